// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler renders the public landing page.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs a home Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

type homeVM struct {
	Title      string
	IsLoggedIn bool
	UserName   string
}

// Serve handles GET /. Signed-in users go straight to their vault.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/vault", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "home", homeVM{Title: "VaultHub"})
}
