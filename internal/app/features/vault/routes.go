// internal/app/features/vault/routes.go
package vault

import (
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all vault resource routes under whatever base path the
// caller chooses (typically "/vault" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST (live search + HTMX table swap)
		pr.Get("/", h.ServeList)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		// DELETE
		pr.Post("/{id}/delete", h.HandleDelete)

		// DOWNLOAD uploaded media
		pr.Get("/{id}/download", h.HandleDownload)
	})

	return r
}
