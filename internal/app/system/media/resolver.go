// Package media decides how a resource mutation's visual representation
// is attached: an uploaded file, a derived URL preview, or neither.
//
// The resolution rules are evaluated in order and are mutually exclusive
// and exhaustive, which enforces the at-most-one-of invariant between
// uploaded media and URL previews by construction.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dalemusser/vaulthub/internal/app/system/preview"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is a candidate file accompanying a create or update.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Attachment is the resolved (media, preview) pair for a mutation.
// At most one of MediaPath and Preview is set.
type Attachment struct {
	MediaURL  string
	MediaPath string
	MediaName string
	Preview   *models.PreviewRecord
}

// Resolver computes attachments and performs the storage side effects
// they imply (storing new uploads, releasing superseded ones).
type Resolver struct {
	files storage.Store
	fetch preview.Fetcher
	log   *zap.Logger
}

// NewResolver constructs a Resolver over the given file store and
// preview fetcher.
func NewResolver(files storage.Store, fetch preview.Fetcher, logger *zap.Logger) *Resolver {
	return &Resolver{files: files, fetch: fetch, log: logger}
}

// Resolve computes the attachment for a mutation.
//
// prior is the persisted state for updates and nil for creates. rawURL
// is the candidate url field after the patch is applied. Rules in order:
//
//  1. Upload present: store it, clear any preview, best-effort release
//     of the prior uploaded object (release failures are logged and
//     swallowed; the logical mutation has already succeeded).
//  2. No upload, non-empty url that is new or changed: fetch a fresh
//     preview. A fetcher failure degrades to no preview; it never fails
//     the mutation.
//  3. Update with unchanged url and no upload: carry prior state forward
//     untouched.
//  4. Neither url nor upload: empty attachment.
//
// Only a storage failure while putting a new upload is returned as an
// error; that is the one primary-path failure the caller must abort on.
func (rv *Resolver) Resolve(ctx context.Context, ownerID string, prior *models.Resource, rawURL string, up *Upload) (Attachment, error) {
	if up != nil {
		att, err := rv.storeUpload(ctx, ownerID, up)
		if err != nil {
			return Attachment{}, err
		}
		if prior != nil && prior.HasMedia() {
			if err := rv.files.Delete(ctx, prior.MediaPath); err != nil {
				rv.log.Warn("failed to release superseded upload",
					zap.String("path", prior.MediaPath),
					zap.Error(err))
			}
		}
		return att, nil
	}

	if rawURL != "" && (prior == nil || rawURL != prior.URL) {
		rec, err := rv.fetch.Fetch(ctx, rawURL)
		if err != nil {
			rv.log.Warn("preview fetch failed, continuing without preview",
				zap.String("url", rawURL),
				zap.Error(err))
			return Attachment{}, nil
		}
		return Attachment{Preview: rec}, nil
	}

	if prior != nil {
		return Attachment{
			MediaURL:  prior.MediaURL,
			MediaPath: prior.MediaPath,
			MediaName: prior.MediaName,
			Preview:   prior.URLPreview,
		}, nil
	}

	return Attachment{}, nil
}

// ReleaseMedia best-effort deletes a stored object. Used on resource
// delete; a missing or unreachable object is logged, never propagated.
func (rv *Resolver) ReleaseMedia(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := rv.files.Delete(ctx, path); err != nil {
		rv.log.Warn("failed to release uploaded file",
			zap.String("path", path),
			zap.Error(err))
	}
}

// storeUpload writes the upload under a per-owner, per-upload-unique
// path and returns the resulting attachment.
func (rv *Resolver) storeUpload(ctx context.Context, ownerID string, up *Upload) (Attachment, error) {
	name := sanitizeFilename(up.Filename)
	path := fmt.Sprintf("resources/%s/%s-%s", ownerID, uuid.New().String()[:8], name)

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.PutOptions{ContentType: contentType}
	if err := rv.files.Put(ctx, path, up.Reader, opts); err != nil {
		return Attachment{}, fmt.Errorf("failed to store upload: %w", err)
	}

	return Attachment{
		MediaURL:  rv.files.URL(path),
		MediaPath: path,
		MediaName: up.Filename,
	}, nil
}

// sanitizeFilename strips path components and replaces characters that
// could be problematic in storage keys.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
