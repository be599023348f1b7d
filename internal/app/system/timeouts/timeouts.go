// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout for database and storage I/O
// in HTTP handlers. Centralizing the values keeps them consistent and
// easy to adjust.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes
//   - Long: uploads and writes with storage side effects, and mutations
//     that may run the preview fetch chain (each fetch channel is
//     individually bounded; Long covers the whole sequential chain)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for uploads and preview-enriched mutations.
func Long() time.Duration { return long }
