package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"hydra/internal/config"
	"hydra/internal/metrics"
)

// Client owns the terminal's single upstream WebSocket connection. It dials,
// reads, decodes and delivers events; on close it reconnects per the
// configured policy. It sends nothing upstream after the handshake.
type Client struct {
	logger  *slog.Logger
	url     string
	venueA  string
	venueB  string
	policy  config.ReconnectConfig
	metrics *metrics.Metrics
}

// NewClient creates a new feed Client.
func NewClient(logger *slog.Logger, feed config.FeedConfig, policy config.ReconnectConfig, m *metrics.Metrics) *Client {
	return &Client{
		logger:  logger,
		url:     feed.URL,
		venueA:  feed.VenueA,
		venueB:  feed.VenueB,
		policy:  policy,
		metrics: m,
	}
}

// Run dials the feed and delivers decoded events in arrival order until ctx
// is cancelled or the attempt budget is exhausted. Accumulated dashboard
// state is never reset by a reconnect; each connection is a fresh stream.
func (c *Client) Run(ctx context.Context, events chan<- Event) error {
	delay := c.policy.Delay
	attempts := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		c.logger.Info("feed: connecting", "url", c.url, "attempt", attempts+1)
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			attempts++
			c.metrics.ReconnectAttemptFailed()
			c.logger.Error("feed: connection failed", "error", err, "attempt", attempts)
			if c.policy.MaxAttempts > 0 && attempts >= c.policy.MaxAttempts {
				return fmt.Errorf("feed: giving up after %d attempts: %w", attempts, err)
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
				delay = c.nextDelay(delay)
			}
			continue
		}

		attempts = 0
		delay = c.policy.Delay
		c.metrics.ReconnectSucceeded()
		c.logger.Info("feed: connected", "url", c.url)

		if !c.send(ctx, events, Connected{}) {
			conn.Close()
			return nil
		}

		c.readLoop(ctx, conn, events)
		conn.Close()

		if ctx.Err() != nil {
			return nil
		}
		if !c.send(ctx, events, Disconnected{}) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
			delay = c.nextDelay(delay)
		}
	}
}

// readLoop consumes one connection until it fails or ctx is cancelled.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, events chan<- Event) {
	// Closing the connection is the only way to unblock a pending read.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.logger.Warn("feed: connection lost", "error", err)
			}
			return
		}

		ev, err := Decode(message, c.venueA, c.venueB)
		if err != nil {
			c.metrics.IncRejected()
			c.logger.Warn("feed: rejected message", "error", err)
			continue
		}

		switch ev.(type) {
		case ScannerUpdate:
			c.metrics.IncScannerUpdate()
		case PriceUpdate:
			c.metrics.IncPriceUpdate()
		case OpportunityEvent:
			c.metrics.IncOpportunity()
		}

		if !c.send(ctx, events, ev) {
			return
		}
	}
}

func (c *Client) send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Client) nextDelay(cur time.Duration) time.Duration {
	if !c.policy.Backoff {
		return c.policy.Delay
	}
	next := cur * 2
	if c.policy.MaxDelay > 0 && next > c.policy.MaxDelay {
		next = c.policy.MaxDelay
	}
	return next
}
