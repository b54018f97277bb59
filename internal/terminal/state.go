package terminal

import (
	"fmt"
	"math"
	"sync"
	"time"

	"hydra/internal/config"
	"hydra/internal/model"
)

// State owns all dashboard state. It is the only writer-facing surface of
// the terminal: the reducer applies feed events through the Apply methods,
// readers take a deep-copy Snapshot. All bounds from the configuration are
// enforced here by construction.
type State struct {
	mu sync.RWMutex

	venueA string
	venueB string

	initialBalance    float64
	priceHistoryLimit int
	opportunityLimit  int
	logLimit          int

	connected     bool
	currentPrice  float64
	priceHistory  []model.PriceTick
	tickers       map[string]*model.Ticker
	tickerOrder   []string
	opportunities []model.Opportunity
	log           []model.LogEntry
	stats         model.Stats

	lastLogID int64
	now       func() time.Time
}

// NewState creates the dashboard state owner.
func NewState(cfg config.DashboardConfig, venueA, venueB string) *State {
	return &State{
		venueA:            venueA,
		venueB:            venueB,
		initialBalance:    cfg.InitialBalance,
		priceHistoryLimit: cfg.PriceHistoryLimit,
		opportunityLimit:  cfg.OpportunityLimit,
		logLimit:          cfg.LogLimit,
		tickers:           make(map[string]*model.Ticker),
		stats: model.Stats{
			Balance: cfg.InitialBalance,
		},
		now: time.Now,
	}
}

// SetConnected updates the connection badge and appends the matching log
// line. Accumulated state survives disconnects untouched.
func (s *State) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = connected
	if connected {
		s.appendLog(model.LogSuccess, "feed connected")
	} else {
		s.appendLog(model.LogWarn, "feed disconnected, reconnecting")
	}
}

// ApplyScannerUpdate replaces the named pair's ticker, marks it as the one
// just updated and clears the mark everywhere else. Spread is the absolute
// percentage difference of the two venue prices relative to venue B.
func (s *State) ApplyScannerUpdate(pair string, venuePrices map[string]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := venuePrices[s.venueA]
	b := venuePrices[s.venueB]
	spread := math.Abs(a-b) / b * 100

	prices := make(map[string]float64, len(venuePrices))
	for venue, p := range venuePrices {
		prices[venue] = p
	}

	for _, t := range s.tickers {
		t.Updating = false
	}
	if _, ok := s.tickers[pair]; !ok {
		s.tickerOrder = append(s.tickerOrder, pair)
	}
	s.tickers[pair] = &model.Ticker{
		Pair:        pair,
		VenuePrices: prices,
		SpreadPct:   spread,
		UpdatedAt:   s.now(),
		Updating:    true,
	}

	s.stats.TotalScanned++
}

// ApplyPrice sets the displayed price and appends one history sample,
// evicting the oldest beyond the window limit.
func (s *State) ApplyPrice(price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentPrice = price
	s.priceHistory = append(s.priceHistory, model.PriceTick{
		Timestamp: s.now(),
		Price:     price,
	})
	if n := len(s.priceHistory) - s.priceHistoryLimit; n > 0 {
		s.priceHistory = append(s.priceHistory[:0], s.priceHistory[n:]...)
	}
}

// ApplyOpportunity records one detected arbitrage event. Executed
// opportunities fold into the stats and emit a success log line; everything
// else is recorded as skipped with no stats effect.
func (s *State) ApplyOpportunity(op model.Opportunity, executed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if executed {
		op.Status = model.StatusExecuted
		s.stats.TotalExecuted++
		s.stats.NetProfit += op.NetProfit
		s.stats.Balance += op.NetProfit
		s.appendLog(model.LogSuccess,
			fmt.Sprintf("executed %s spread %.4f%% profit $%.2f", op.Pair, op.SpreadPct, op.NetProfit))
	} else {
		op.Status = model.StatusSkipped
	}
	if op.DetectedAt.IsZero() {
		op.DetectedAt = s.now()
	}

	s.opportunities = append([]model.Opportunity{op}, s.opportunities...)
	if len(s.opportunities) > s.opportunityLimit {
		s.opportunities = s.opportunities[:s.opportunityLimit]
	}
}

// appendLog adds one log pane entry. IDs are wall-clock milliseconds, bumped
// when two entries land in the same millisecond so they stay monotonic.
// Callers must hold s.mu.
func (s *State) appendLog(level model.LogLevel, message string) {
	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastLogID {
		id = s.lastLogID + 1
	}
	s.lastLogID = id

	s.log = append(s.log, model.LogEntry{
		ID:      id,
		Time:    now.Format("15:04:05"),
		Message: message,
		Level:   level,
	})
	if n := len(s.log) - s.logLimit; n > 0 {
		s.log = append(s.log[:0], s.log[n:]...)
	}
}

// Snapshot returns a deep copy of the current dashboard state. Tickers are
// listed in first-seen order.
func (s *State) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.Snapshot{
		Connected:     s.connected,
		CurrentPrice:  s.currentPrice,
		PriceHistory:  append([]model.PriceTick(nil), s.priceHistory...),
		Opportunities: append([]model.Opportunity(nil), s.opportunities...),
		Log:           append([]model.LogEntry(nil), s.log...),
		Stats:         s.stats,
	}

	snap.Tickers = make([]model.Ticker, 0, len(s.tickerOrder))
	for _, pair := range s.tickerOrder {
		t := *s.tickers[pair]
		t.VenuePrices = make(map[string]float64, len(s.tickers[pair].VenuePrices))
		for venue, p := range s.tickers[pair].VenuePrices {
			t.VenuePrices[venue] = p
		}
		snap.Tickers = append(snap.Tickers, t)
	}
	return snap
}

// Connected reports the current connection badge state.
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}
