// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/vaulthub/internal/app/features/errors"
	userstore "github.com/dalemusser/vaulthub/internal/app/store/users"
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"github.com/dalemusser/vaulthub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie  = "vaulthub_oauth_state"
	returnCookie = "vaulthub_oauth_return"
	userInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Handler owns the sign-in page and the Google OAuth code flow.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager

	ClientID     string
	ClientSecret string
	BaseURL      string

	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(users *userstore.Store, sessions *auth.SessionManager, clientID, clientSecret, baseURL string, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		Sessions:     sessions,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      baseURL,
		ErrLog:       errLog,
		Log:          logger,
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.BaseURL + "/auth/google/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type loginVM struct {
	Title string
	Error string
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/vault", http.StatusSeeOther)
		return
	}

	vm := loginVM{Title: "Sign in"}
	switch r.URL.Query().Get("error") {
	case "google_not_configured":
		vm.Error = "Google sign-in is not configured on this server."
	case "auth_failed":
		vm.Error = "Sign-in failed. Please try again."
	}
	templates.Render(w, r, "login", vm)
}

// HandleGoogleStart handles GET /auth/google: stashes a one-shot state
// token and the post-login return URL in short-lived cookies, then
// redirects to Google's consent screen.
func (h *Handler) HandleGoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.ClientID == "" || h.ClientSecret == "" {
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state := uuid.New().String()
	setFlowCookie(w, r, stateCookie, state)
	if ret := r.URL.Query().Get("return"); ret != "" && ret[0] == '/' {
		setFlowCookie(w, r, returnCookie, ret)
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusSeeOther)
}

// googleUserInfo is the subset of Google's userinfo response we keep.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleGoogleCallback handles GET /auth/google/callback: verifies the
// state token, exchanges the code, upserts the user, and establishes
// the session.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie(stateCookie)
	clearFlowCookie(w, stateCookie)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		h.Log.Warn("oauth callback with mismatched state")
		http.Redirect(w, r, "/login?error=auth_failed", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=auth_failed", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cfg := h.oauth2Config()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/login?error=auth_failed", http.StatusSeeOther)
		return
	}

	info, err := fetchUserInfo(ctx, cfg, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=auth_failed", http.StatusSeeOther)
		return
	}

	user, err := h.Users.UpsertGoogleUser(ctx, info.ID, info.Email, info.Name, info.Picture)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to upsert user on login", err,
			"We couldn't complete your sign-in. Please try again.", "/login")
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "failed to save session", err,
			"We couldn't complete your sign-in. Please try again.", "/login")
		return
	}

	dest := "/vault"
	if ret, err := r.Cookie(returnCookie); err == nil && ret.Value != "" && ret.Value[0] == '/' {
		dest = ret.Value
	}
	clearFlowCookie(w, returnCookie)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func fetchUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (googleUserInfo, error) {
	resp, err := cfg.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}
	if info.ID == "" {
		return googleUserInfo{}, fmt.Errorf("userinfo response missing subject id")
	}
	return info, nil
}

func setFlowCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
