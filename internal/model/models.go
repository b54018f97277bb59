package model

import "time"

// PriceTick represents a single timestamped price sample in the chart window.
type PriceTick struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// Ticker represents the latest cross-venue snapshot for one trading pair.
type Ticker struct {
	Pair        string             `json:"pair"`
	VenuePrices map[string]float64 `json:"venue_prices"`
	SpreadPct   float64            `json:"spread_pct"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Updating    bool               `json:"updating"`
}

// OpportunityStatus is the terminal-side outcome of a detected opportunity.
type OpportunityStatus string

const (
	StatusExecuted OpportunityStatus = "EXECUTED"
	StatusSkipped  OpportunityStatus = "SKIPPED"
	StatusPending  OpportunityStatus = "PENDING"
)

// Opportunity represents one detected arbitrage event from the feed.
type Opportunity struct {
	ID         string            `json:"id"`
	DetectedAt time.Time         `json:"detected_at"`
	Pair       string            `json:"pair"`
	SpreadPct  float64           `json:"spread_pct"`
	NetProfit  float64           `json:"net_profit"`
	Status     OpportunityStatus `json:"status"`
}

// LogLevel is the severity of a log pane entry.
type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogSuccess LogLevel = "success"
	LogWarn    LogLevel = "warn"
)

// LogEntry represents one human-readable line in the dashboard log pane.
type LogEntry struct {
	ID      int64    `json:"id"`
	Time    string   `json:"time"`
	Message string   `json:"message"`
	Level   LogLevel `json:"level"`
}

// Stats holds the running aggregate counters shown in the summary panel.
type Stats struct {
	TotalScanned  int64   `json:"total_scanned"`
	TotalExecuted int64   `json:"total_executed"`
	NetProfit     float64 `json:"net_profit"`
	Balance       float64 `json:"balance"`
}

// Snapshot is a deep copy of the full dashboard state at one instant.
type Snapshot struct {
	Connected     bool          `json:"connected"`
	CurrentPrice  float64       `json:"current_price"`
	PriceHistory  []PriceTick   `json:"price_history"`
	Tickers       []Ticker      `json:"tickers"`
	Opportunities []Opportunity `json:"opportunities"`
	Log           []LogEntry    `json:"log"`
	Stats         Stats         `json:"stats"`
}
