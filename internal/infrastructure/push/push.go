// Package push subscribes to the backend's live interaction channel.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/infrastructure/api"
	"golang.org/x/net/websocket"
)

// ErrGaveUp is returned when reconnect attempts are exhausted.
var ErrGaveUp = errors.New("push channel: reconnect attempts exhausted")

// RetryPolicy bounds reconnect attempts after a dropped or failed connection.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// StableAfter is how long a silent connection must stay up before it
	// counts as healthy.
	StableAfter time.Duration
}

// DefaultRetryPolicy returns the stock reconnect policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      5,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
		StableAfter:     10 * time.Second,
	}
}

func (p RetryPolicy) stableAfter() time.Duration {
	if p.StableAfter > 0 {
		return p.StableAfter
	}
	return DefaultRetryPolicy().StableAfter
}

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	def := DefaultRetryPolicy()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = def.InitialInterval
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxInterval = def.MaxInterval
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.Reset()
	return b
}

// Dialer opens one websocket connection.
type Dialer func(ctx context.Context) (*websocket.Conn, error)

// Listener delivers push events from the backend.
type Listener struct {
	url    string
	policy RetryPolicy
	dial   Dialer
}

// WebSocketURL derives the push endpoint from the API base URL. The secure
// scheme is used iff the API itself is served over https.
func WebSocketURL(apiBase string) (wsURL, origin string, err error) {
	u, err := url.Parse(strings.TrimSpace(apiBase))
	if err != nil {
		return "", "", fmt.Errorf("parse api url: %w", err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("api url %q has no host", apiBase)
	}

	origin = (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", "", fmt.Errorf("unsupported api scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), origin, nil
}

// NewListener builds a listener for the backend at apiBase.
func NewListener(apiBase string, policy RetryPolicy) (*Listener, error) {
	wsURL, origin, err := WebSocketURL(apiBase)
	if err != nil {
		return nil, err
	}
	return NewListenerWithDialer(wsURL, policy, func(ctx context.Context) (*websocket.Conn, error) {
		cfg, err := websocket.NewConfig(wsURL, origin)
		if err != nil {
			return nil, err
		}
		return cfg.DialContext(ctx)
	}), nil
}

// NewListenerWithDialer creates a listener with a custom dialer for tests.
func NewListenerWithDialer(wsURL string, policy RetryPolicy, dial Dialer) *Listener {
	return new(Listener{url: wsURL, policy: policy, dial: dial})
}

// URL returns the websocket endpoint.
func (l *Listener) URL() string {
	return l.url
}

// Run connects and forwards decoded events to out until ctx is cancelled.
// Failed dials and connections that drop before delivering a frame or
// staying up for StableAfter count as failed attempts; once MaxRetries
// consecutive attempts fail Run returns ErrGaveUp.
func (l *Listener) Run(ctx context.Context, out chan<- learning.Event) error {
	b := l.policy.backOff()
	maxRetries := max(l.policy.MaxRetries, 0)
	failures := 0
	for {
		healthy, err := l.session(ctx, out)
		if ctx.Err() != nil {
			return nil
		}
		if healthy {
			b.Reset()
			failures = 0
		} else {
			failures++
		}
		if failures > maxRetries {
			return fmt.Errorf("%w: %w", ErrGaveUp, err)
		}

		wait := b.NextBackOff()
		log.Printf("push: %v, retrying in %s", err, wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// session runs one connection. It reports whether the connection was
// healthy enough to reset the backoff.
func (l *Listener) session(ctx context.Context, out chan<- learning.Event) (bool, error) {
	conn, err := l.dial(ctx)
	if err != nil {
		return false, fmt.Errorf("dial: %w", err)
	}
	log.Printf("push: connected to %s", l.url)

	start := time.Now()
	frames, err := l.read(ctx, conn, out)
	healthy := frames > 0 || time.Since(start) >= l.policy.stableAfter()
	return healthy, fmt.Errorf("connection lost: %w", err)
}

func (l *Listener) read(ctx context.Context, conn *websocket.Conn, out chan<- learning.Event) (int, error) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
	}()

	frames := 0
	for {
		var frame string
		if err := websocket.Message.Receive(conn, &frame); err != nil {
			return frames, err
		}
		frames++
		ev, ok := Decode([]byte(frame))
		if !ok {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return frames, ctx.Err()
		}
	}
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Decode parses one inbound frame. Malformed frames are reported as !ok.
// Unknown types decode successfully with no payload.
func Decode(frame []byte) (learning.Event, bool) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		log.Printf("push: dropping malformed frame: %v", err)
		return learning.Event{}, false
	}
	ev := learning.Event{Type: env.Type}
	if env.Type != learning.EventNewInteraction {
		return ev, true
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		log.Printf("push: dropping %s frame without payload", env.Type)
		return learning.Event{}, false
	}
	activity, err := api.DecodeActivity(env.Data)
	if err != nil {
		log.Printf("push: dropping malformed %s payload: %v", env.Type, err)
		return learning.Event{}, false
	}
	ev.Activity = &activity
	return ev, true
}
