// Package htmlsanitize strips dangerous markup from user-supplied rich
// text before it is stored. Resource notes accept limited formatting;
// everything script-shaped is removed.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with disallowed tags and attributes removed.
// Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
