// internal/app/system/preview/channels.go
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ChannelTimeout bounds a single fetch attempt on one channel. Channels
// get exactly one attempt each before the chain moves on, so the worst
// case for a preview fetch is len(channels) * ChannelTimeout.
const ChannelTimeout = 5 * time.Second

// maxBodyBytes caps how much HTML a channel will read from a page.
const maxBodyBytes = 2 << 20 // 2 MiB

// FetchChannel is one concrete mechanism for retrieving a remote page's
// HTML. Channels are tried strictly in order and each failure moves the
// chain to the next channel; no channel failure escapes the fetcher.
type FetchChannel interface {
	// Name identifies the channel in logs.
	Name() string

	// Fetch retrieves the raw HTML of target, bounded by the channel's
	// client timeout and the passed context.
	Fetch(ctx context.Context, target string) (string, error)
}

func newChannelClient() *http.Client {
	return &http.Client{Timeout: ChannelTimeout}
}

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// allOriginsChannel fetches through the AllOrigins JSON proxy, which
// wraps the page body in a {"contents": "..."} envelope.
type allOriginsChannel struct {
	base   string
	client *http.Client
}

// NewAllOriginsChannel returns the AllOrigins proxy channel.
func NewAllOriginsChannel() FetchChannel {
	return &allOriginsChannel{
		base:   "https://api.allorigins.win/get?url=",
		client: newChannelClient(),
	}
}

func (c *allOriginsChannel) Name() string { return "allorigins" }

func (c *allOriginsChannel) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+url.QueryEscape(target), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptHTML)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return "", fmt.Errorf("decode proxy envelope: %w", err)
	}
	if envelope.Contents == "" {
		return "", fmt.Errorf("proxy returned empty contents")
	}
	return envelope.Contents, nil
}

// passthroughChannel fetches through a cors-anywhere style proxy that
// returns the page body unmodified, with the target appended to the base.
type passthroughChannel struct {
	name   string
	base   string
	client *http.Client
}

// NewPassthroughChannel returns a passthrough proxy channel rooted at base.
func NewPassthroughChannel(name, base string) FetchChannel {
	return &passthroughChannel{name: name, base: base, client: newChannelClient()}
}

func (c *passthroughChannel) Name() string { return c.name }

func (c *passthroughChannel) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptHTML)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	return readBody(resp)
}

// directChannel fetches the target URL with no proxy. Last in the
// default chain: many sites refuse unadorned server-side requests, but
// it costs one bounded attempt and rescues the chain when both proxies
// are down.
type directChannel struct {
	client *http.Client
}

// NewDirectChannel returns the direct, proxy-less channel.
func NewDirectChannel() FetchChannel {
	return &directChannel{client: newChannelClient()}
}

func (c *directChannel) Name() string { return "direct" }

func (c *directChannel) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("User-Agent", "vaulthub-preview/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	return readBody(resp)
}

// DefaultChannels is the production fallback order: AllOrigins JSON
// proxy first, cors-anywhere passthrough second, direct fetch last.
func DefaultChannels() []FetchChannel {
	return []FetchChannel{
		NewAllOriginsChannel(),
		NewPassthroughChannel("cors-anywhere", "https://cors-anywhere.herokuapp.com/"),
		NewDirectChannel(),
	}
}
