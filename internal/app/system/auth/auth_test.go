package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newManager(t)

	// Sign in on one request, capturing the session cookie.
	req1 := httptest.NewRequest("GET", "/auth/google/callback", nil)
	rec1 := httptest.NewRecorder()
	err := sm.SignIn(rec1, req1, auth.SessionUser{
		ID:    "651234567890abcdef123456",
		Name:  "Ada",
		Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	// Replay the cookie through the middleware on a second request.
	req2 := httptest.NewRequest("GET", "/vault", nil)
	for _, c := range rec1.Result().Cookies() {
		req2.AddCookie(c)
	}

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected a user in context after sign-in")
	}
	if got.ID != "651234567890abcdef123456" || got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestLoadSessionUser_NoSession(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/vault", nil)
	var found bool
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if found {
		t.Error("no session cookie should mean no user in context")
	}
}

func TestRequireSignedIn_BrowserRedirectsToLogin(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/vault/new?type=photo", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	want := "/login?return=%2Fvault%2Fnew%3Ftype%3Dphoto"
	if loc != want {
		t.Errorf("Location: got %q, want %q", loc, want)
	}
}

func TestRequireSignedIn_HTMXGetsHXRedirect(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/vault", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if hx := rec.Header().Get("HX-Redirect"); hx == "" {
		t.Error("expected an HX-Redirect header for HTMX callers")
	}
}

func TestRequireSignedIn_APIGets401(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("GET", "/vault", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_PassesThroughWithUser(t *testing.T) {
	sm := newManager(t)

	req := auth.WithTestUser(httptest.NewRequest("GET", "/vault", nil),
		&auth.SessionUser{ID: "abc", Name: "Ada"})
	rec := httptest.NewRecorder()

	var ran bool
	sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})).ServeHTTP(rec, req)

	if !ran {
		t.Error("protected handler should run for a signed-in user")
	}
}

func TestSignOut_DeletesCookie(t *testing.T) {
	sm := newManager(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()

	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected the session cookie to be set for deletion")
	}
}
