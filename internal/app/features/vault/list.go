// internal/app/features/vault/list.go
package vault

import (
	"context"
	"net/http"

	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/vaulthub/internal/app/system/query"
	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type listVM struct {
	Title     string
	UserName  string
	Resources []models.Resource
	Type      string
	Term      string
	Types     []string
	Total     int
}

// ServeList handles GET /vault.
//
// The full owner collection is fetched once (owner-equality query, no
// server-side sort) and narrowed in memory by the query engine, so the
// type dropdown and the search box filter live without another store
// round-trip. HTMX requests get just the rows partial swapped in.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	typ := r.URL.Query().Get("type")
	if typ != "" && !models.IsValidResourceType(typ) {
		typ = ""
	}
	term := r.URL.Query().Get("q")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Resources.ListByOwner(ctx, user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list resources", err,
			"We couldn't load your vault. Please try again.", "/")
		return
	}

	vm := listVM{
		Title:     "My Vault",
		UserName:  user.Name,
		Resources: query.Filter(all, typ, term),
		Type:      typ,
		Term:      term,
		Types:     models.ResourceTypes,
		Total:     len(all),
	}

	if r.Header.Get("HX-Request") == "true" {
		templates.Render(w, r, "vault_rows", vm)
		return
	}
	templates.Render(w, r, "vault_list", vm)
}
