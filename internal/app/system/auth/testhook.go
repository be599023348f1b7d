// internal/app/system/auth/testhook.go
package auth

import "net/http"

// WithTestUser injects a SessionUser directly into the request context,
// bypassing the session middleware. For handler tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
