package vault_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/vaulthub/internal/app/features/errors"
	"github.com/dalemusser/vaulthub/internal/app/features/vault"
	"github.com/dalemusser/vaulthub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	h := vault.NewHandler(nil, nil, uierrors.NewErrorLogger(logger), logger)
	return vault.Routes(h, sm)
}

func TestRoutes_RequireSignIn(t *testing.T) {
	router := newRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/"},
		{"GET", "/new"},
		{"POST", "/"},
		{"GET", "/651234567890abcdef123456/edit"},
		{"POST", "/651234567890abcdef123456/edit"},
		{"POST", "/651234567890abcdef123456/delete"},
		{"GET", "/651234567890abcdef123456/download"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s %s: got status %d, want %d (redirect to login)",
				p.method, p.path, rec.Code, http.StatusSeeOther)
		}
	}
}

func TestRoutes_HTMXUnauthenticatedGetsHXRedirect(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec.Header().Get("HX-Redirect") == "" {
		t.Error("expected HX-Redirect for HTMX callers")
	}
}
