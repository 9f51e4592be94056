package htmx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Renderable is satisfied by templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Event is a client-side event raised through HX-Trigger. A nil Detail
// sends the bare event name.
type Event struct {
	Detail any
	Name   string
}

// Config collects response headers and out-of-band components for one
// HTMX render.
type Config struct {
	OOBComponents     []Renderable
	Triggers          []Event
	TriggersAfterSwap []Event
	Retarget          string
	Reswap            SwapStrategy
	PushURL           string
	ReplaceURL        string
	Refresh           bool
}

// RenderOption configures an HTMX render.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the HX-* headers. Call it before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()

	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	if c.ReplaceURL != "" {
		h.Set(HeaderHXReplaceURL, c.ReplaceURL)
	}
	if v := encodeEvents(c.Triggers); v != "" {
		h.Set(HeaderHXTrigger, v)
	}
	if v := encodeEvents(c.TriggersAfterSwap); v != "" {
		h.Set(HeaderHXTriggerAfterSwap, v)
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// encodeEvents emits a comma list when no event has a detail and the
// JSON object form otherwise. A later duplicate name wins.
func encodeEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}

	withDetail := false
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
		if e.Detail != nil {
			withDetail = true
		}
	}
	if !withDetail {
		return strings.Join(names, ", ")
	}

	obj := make(map[string]any, len(events))
	for _, e := range events {
		obj[e.Name] = e.Detail
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return strings.Join(names, ", ")
	}
	return string(b)
}

// WithOOB appends components rendered after the main one. Each must carry
// an id and hx-swap-oob.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithPushURL pushes url onto browser history. "false" suppresses it.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithReplaceURL replaces the current history entry.
func WithReplaceURL(url string) RenderOption {
	return func(c *Config) {
		c.ReplaceURL = url
	}
}

// WithTrigger raises bare events as soon as the response arrives.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.Triggers = append(c.Triggers, Event{Name: e})
		}
	}
}

// WithTriggerDetail raises event with a JSON detail payload.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, Event{Name: event, Detail: detail})
	}
}

// WithTriggerAfterSwap raises events once the swap completes, which is
// when freshly swapped counters can start animating.
func WithTriggerAfterSwap(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.TriggersAfterSwap = append(c.TriggersAfterSwap, Event{Name: e})
		}
	}
}

func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
