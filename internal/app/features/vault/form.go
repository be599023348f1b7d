// internal/app/features/vault/form.go
package vault

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/vaulthub/internal/app/system/media"
)

// maxUploadBytes caps multipart form parsing for resource uploads.
const maxUploadBytes = 32 << 20 // 32 MB

// formUpload extracts the optional "file" field from a parsed multipart
// form. Nil when no file was attached. The caller owns closing the
// returned upload's reader via closeFn.
func formUpload(r *http.Request) (*media.Upload, func()) {
	file, header, err := r.FormFile("file")
	if err != nil || header == nil || header.Size == 0 {
		return nil, func() {}
	}
	up := &media.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
	return up, func() { file.Close() }
}

// splitTags parses the comma-separated tags field, preserving order.
// Trimming and empty-entry removal happen in the store.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// parseReminder parses the optional reminder field. The form submits
// datetime-local values; a bare date is accepted too. Unparseable input
// is treated as no reminder.
func parseReminder(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// joinTags renders a tag list back into the comma-separated form value.
func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
