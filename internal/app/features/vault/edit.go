// internal/app/features/vault/edit.go
package vault

import (
	"context"
	"net/http"
	"strings"

	resourcestore "github.com/dalemusser/vaulthub/internal/app/store/resources"
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/vaulthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadOwned resolves the {id} route param and loads the resource,
// enforcing that it belongs to the signed-in user. Anything that does
// not resolve to one of the caller's resources renders as not found so
// the route does not leak which ids exist.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (models.Resource, *auth.SessionUser, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return models.Resource{}, nil, false
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "invalid resource id", err, "Resource not found.", "/vault")
		return models.Resource{}, user, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Resources.GetByID(ctx, id)
	if err != nil || res.OwnerID != user.ID {
		h.ErrLog.LogNotFound(w, r, "resource lookup failed", err, "Resource not found.", "/vault")
		return models.Resource{}, user, false
	}
	return res, user, true
}

// ServeEdit handles GET /vault/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	res, _, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "vault_form", formVM{
		Title:    "Edit resource",
		Action:   "/vault/" + res.ID.Hex() + "/edit",
		Editing:  true,
		Types:    models.ResourceTypes,
		Resource: res,
		Tags:     joinTags(res.Tags),
	})
}

// HandleEdit handles POST /vault/{id}/edit. The form always submits
// every field, so the patch sets them all; an empty reminder field
// clears any stored reminder. Swapping in a new file replaces the old
// upload and clears any URL preview, and changing the URL without a
// file triggers a fresh preview fetch; both happen in the store.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	res, _, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/vault")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	rawURL := strings.TrimSpace(r.FormValue("url"))
	typ := strings.TrimSpace(r.FormValue("type"))
	notes := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("notes")))
	tags := splitTags(r.FormValue("tags"))
	if tags == nil {
		tags = []string{}
	}
	reminder := parseReminder(r.FormValue("reminder_date"))

	patch := resourcestore.UpdatePatch{
		Title:         &title,
		URL:           &rawURL,
		Type:          &typ,
		Tags:          tags,
		Notes:         &notes,
		ReminderDate:  reminder,
		ClearReminder: reminder == nil,
	}

	up, closeUpload := formUpload(r)
	defer closeUpload()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Resources.Update(ctx, res.ID, patch, up); err != nil {
		if msg, ok := validationMessage(err); ok {
			in := resourcestore.CreateInput{
				Title:        title,
				URL:          rawURL,
				Type:         typ,
				Tags:         tags,
				Notes:        notes,
				ReminderDate: reminder,
			}
			h.renderFormAgain(w, r, "Edit resource", "/vault/"+res.ID.Hex()+"/edit", true, in, msg)
			return
		}
		h.ErrLog.LogServerError(w, r, "failed to update resource", err,
			"We couldn't save your changes. Please try again.", "/vault")
		return
	}

	http.Redirect(w, r, "/vault", http.StatusSeeOther)
}
