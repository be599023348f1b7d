// internal/app/features/vault/new.go
package vault

import (
	"context"
	"errors"
	"net/http"
	"strings"

	resourcestore "github.com/dalemusser/vaulthub/internal/app/store/resources"
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/vaulthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"github.com/dalemusser/vaulthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type formVM struct {
	Title    string
	Action   string
	Editing  bool
	Types    []string
	Message  string
	Resource models.Resource
	Tags     string
}

// ServeNew handles GET /vault/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "vault_form", formVM{
		Title:  "Add resource",
		Action: "/vault",
		Types:  models.ResourceTypes,
		Resource: models.Resource{
			Type: models.DefaultResourceType,
		},
	})
}

// HandleCreate handles POST /vault: validates the form, stores an
// attached file or derives a URL preview, and inserts the resource.
// Preview fetch failures are silent; the resource is saved regardless.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/vault")
		return
	}

	in := resourcestore.CreateInput{
		Title:        strings.TrimSpace(r.FormValue("title")),
		URL:          strings.TrimSpace(r.FormValue("url")),
		Type:         strings.TrimSpace(r.FormValue("type")),
		Tags:         splitTags(r.FormValue("tags")),
		Notes:        htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("notes"))),
		ReminderDate: parseReminder(r.FormValue("reminder_date")),
	}

	up, closeUpload := formUpload(r)
	defer closeUpload()

	// Long timeout: the mutation may run the whole preview fetch chain.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Resources.Create(ctx, in, user.ID, up); err != nil {
		if msg, ok := validationMessage(err); ok {
			h.renderFormAgain(w, r, "Add resource", "/vault", false, in, msg)
			return
		}
		h.ErrLog.LogServerError(w, r, "failed to create resource", err,
			"We couldn't save your resource. Please try again.", "/vault")
		return
	}

	http.Redirect(w, r, "/vault", http.StatusSeeOther)
}

// validationMessage maps store validation errors to user-facing text.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, resourcestore.ErrTitleRequired):
		return "Title is required.", true
	case errors.Is(err, resourcestore.ErrInvalidType):
		return "Type is invalid.", true
	case errors.Is(err, resourcestore.ErrInvalidURL):
		return "URL must be a valid absolute http(s) URL.", true
	}
	return "", false
}

func (h *Handler) renderFormAgain(w http.ResponseWriter, r *http.Request, title, action string, editing bool, in resourcestore.CreateInput, msg string) {
	h.Log.Debug("re-rendering resource form", zap.String("reason", msg))
	templates.Render(w, r, "vault_form", formVM{
		Title:   title,
		Action:  action,
		Editing: editing,
		Types:   models.ResourceTypes,
		Message: msg,
		Resource: models.Resource{
			Title:        in.Title,
			URL:          in.URL,
			Type:         in.Type,
			Notes:        in.Notes,
			ReminderDate: in.ReminderDate,
		},
		Tags: joinTags(in.Tags),
	})
}
