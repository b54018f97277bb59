package terminal

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydra/internal/feed"
	"hydra/internal/model"
)

func TestReducerAppliesEventsInOrder(t *testing.T) {
	state := testState()
	events := make(chan feed.Event, 16)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewReducer(logger, state, events).Run(ctx)
	}()

	events <- feed.Connected{}
	events <- feed.PriceUpdate{Price: 3500.12}
	events <- feed.PriceUpdate{Price: 3501.00}
	events <- feed.ScannerUpdate{Pair: "ETH/USDC", VenuePrices: map[string]float64{
		"Binance":    3500,
		"Uniswap V3": 3490,
	}}
	events <- feed.OpportunityEvent{
		ID: "opp-1", Pair: "ETH/USDC", SpreadPct: 0.31, NetProfit: 12.50,
		Status: feed.StatusExecutable,
	}
	events <- feed.OpportunityEvent{
		ID: "opp-2", Pair: "ETH/USDC", SpreadPct: 0.05, NetProfit: 0.10,
		Status: "SKIPPED_LOW_PROFIT",
	}
	close(events)
	<-done

	snap := state.Snapshot()
	assert.True(t, snap.Connected)
	assert.Equal(t, 3501.00, snap.CurrentPrice)
	require.Len(t, snap.PriceHistory, 2)
	require.Len(t, snap.Tickers, 1)
	require.Len(t, snap.Opportunities, 2)
	assert.Equal(t, model.StatusSkipped, snap.Opportunities[0].Status)
	assert.Equal(t, model.StatusExecuted, snap.Opportunities[1].Status)
	assert.Equal(t, int64(1), snap.Stats.TotalExecuted)
	assert.Equal(t, 10012.50, snap.Stats.Balance)
}

func TestReducerStopsOnCancel(t *testing.T) {
	state := testState()
	events := make(chan feed.Event)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		NewReducer(logger, state, events).Run(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reducer did not stop on cancel")
	}
}
