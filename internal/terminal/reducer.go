package terminal

import (
	"context"
	"log/slog"

	"hydra/internal/feed"
	"hydra/internal/model"
)

// Reducer is the single consumer of the feed event channel. One goroutine
// applies events to the state in arrival order, which keeps the ordering
// guarantees of the stream without any further locking discipline.
type Reducer struct {
	logger *slog.Logger
	state  *State
	events <-chan feed.Event
}

// NewReducer creates a Reducer draining events into state.
func NewReducer(logger *slog.Logger, state *State, events <-chan feed.Event) *Reducer {
	return &Reducer{logger: logger, state: state, events: events}
}

// Run consumes events until ctx is cancelled or the channel closes.
func (r *Reducer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-r.events:
			if !ok {
				return
			}
			r.apply(ev)
		}
	}
}

func (r *Reducer) apply(ev feed.Event) {
	switch ev := ev.(type) {
	case feed.Connected:
		r.state.SetConnected(true)
	case feed.Disconnected:
		r.state.SetConnected(false)
	case feed.ScannerUpdate:
		r.state.ApplyScannerUpdate(ev.Pair, ev.VenuePrices)
	case feed.PriceUpdate:
		r.state.ApplyPrice(ev.Price)
	case feed.OpportunityEvent:
		r.state.ApplyOpportunity(model.Opportunity{
			ID:        ev.ID,
			Pair:      ev.Pair,
			SpreadPct: ev.SpreadPct,
			NetProfit: ev.NetProfit,
		}, ev.Status == feed.StatusExecutable)
	default:
		r.logger.Warn("reducer: unhandled event", "event", ev)
	}
}
