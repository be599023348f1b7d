// Package storehealth tracks whether the document store is reachable.
//
// The policy is "probe once, then trust the cached verdict": the first
// caller pays for a bounded ping, everyone after that gets the cached
// answer. The state machine is explicit (Unknown → Checking → Ready |
// Unready) and lives on an injectable Checker owned by the app's
// construction context, not in package-global mutable state, so tests
// don't leak verdicts into each other.
package storehealth

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// State is the checker's position in its lifecycle.
type State int

const (
	StateUnknown State = iota
	StateChecking
	StateReady
	StateUnready
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateReady:
		return "ready"
	case StateUnready:
		return "unready"
	default:
		return "unknown"
	}
}

// DefaultProbeTimeout bounds the single connectivity probe.
const DefaultProbeTimeout = 2 * time.Second

// Checker caches a one-shot reachability verdict for a Mongo client.
type Checker struct {
	client  *mongo.Client
	timeout time.Duration
	log     *zap.Logger

	mu    sync.Mutex
	state State
}

// New constructs a Checker in StateUnknown.
func New(client *mongo.Client, logger *zap.Logger) *Checker {
	return &Checker{
		client:  client,
		timeout: DefaultProbeTimeout,
		log:     logger,
	}
}

// Ready reports whether the store is reachable. The first call from
// StateUnknown runs the probe; concurrent callers that arrive while the
// probe is in flight get false immediately rather than waiting. Once a
// verdict is cached, Ready returns it without further I/O until Reset.
func (c *Checker) Ready(ctx context.Context) bool {
	c.mu.Lock()
	switch c.state {
	case StateReady:
		c.mu.Unlock()
		return true
	case StateUnready, StateChecking:
		c.mu.Unlock()
		return false
	}
	c.state = StateChecking
	c.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.client.Ping(probeCtx, readpref.Primary())

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("store reachability probe failed", zap.Error(err))
		c.state = StateUnready
		return false
	}
	c.state = StateReady
	return true
}

// State returns the current lifecycle state.
func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset discards the cached verdict, returning to StateUnknown. The
// next Ready call probes again.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateUnknown
}
