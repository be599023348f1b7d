// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger couples zap logging with user-facing error pages so
// handlers can report a failure in one call: the operator gets the
// real error, the user gets an actionable message and a way back.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger over the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a client error and renders a bad-request page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs a missing-record condition and renders a not-found page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	RenderNotFound(w, r, userMsg, backURL)
}

// LogServerError logs a server-side failure and renders an error page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg, zap.String("path", r.URL.Path), zap.Error(err))
	RenderServerError(w, r, userMsg, backURL)
}
