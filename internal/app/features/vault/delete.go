// internal/app/features/vault/delete.go
package vault

import (
	"context"
	"net/http"

	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles POST /vault/{id}/delete. The backing upload, if
// any, is released by the store before the record goes; a missing
// storage object does not block the delete. HTMX callers get an
// HX-Redirect so the whole page refreshes out of the swapped table.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, user, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Resources.Delete(ctx, res.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to delete resource", err,
			"We couldn't delete that resource. Please try again.", "/vault")
		return
	}

	h.Log.Info("resource deleted",
		zap.String("resource_id", res.ID.Hex()),
		zap.String("owner_id", user.ID))

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/vault")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/vault", http.StatusSeeOther)
}
