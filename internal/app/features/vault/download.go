// internal/app/features/vault/download.go
package vault

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// HandleDownload handles GET /vault/{id}/download for resources backed
// by an uploaded file. Local storage serves the file directly; other
// backends get a short-lived signed URL and a redirect.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	res, _, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if !res.HasMedia() {
		h.ErrLog.LogNotFound(w, r, "resource has no media", nil, "This resource has no uploaded file.", "/vault")
		return
	}

	filename := res.MediaName
	if filename == "" {
		filename = "download"
	}
	contentDisposition := "attachment; filename=\"" + filename + "\""

	// Prevent browser caching of downloads (important when files are replaced)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if localStorage, ok := h.Files.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(res.MediaPath)
		if err != nil {
			h.Log.Error("error getting file path",
				zap.Error(err),
				zap.String("path", res.MediaPath))
			h.ErrLog.LogServerError(w, r, "failed to locate file", err, "Failed to locate file.", "/vault")
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	signedURL, err := h.Files.PresignedURL(ctx, res.MediaPath, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: contentDisposition,
	})
	if err != nil {
		h.Log.Error("error generating signed URL",
			zap.Error(err),
			zap.String("path", res.MediaPath))
		h.ErrLog.LogServerError(w, r, "failed to sign download URL", err, "Failed to generate download link.", "/vault")
		return
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
}
