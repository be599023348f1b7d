// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the sign-in page. The OAuth endpoints live at the root
// (/auth/google, /auth/google/callback) and are mounted from bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	return r
}
