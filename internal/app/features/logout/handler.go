// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler signs the current user out.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Log: logger}
}

// HandleLogout handles POST /logout: clears the session and returns to
// the landing page.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("failed to clear session on logout", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
