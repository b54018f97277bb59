package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds ingest counters for the /health endpoint.
type Metrics struct {
	start time.Time

	scannerUpdates atomic.Int64
	priceUpdates   atomic.Int64
	opportunities  atomic.Int64
	rejected       atomic.Int64

	reconnectOK atomic.Int64
	reconnectNG atomic.Int64

	droppedSubscribers atomic.Int64
}

func New(start time.Time) *Metrics {
	return &Metrics{start: start}
}

func (m *Metrics) IncScannerUpdate() { m.scannerUpdates.Add(1) }
func (m *Metrics) IncPriceUpdate()   { m.priceUpdates.Add(1) }
func (m *Metrics) IncOpportunity()   { m.opportunities.Add(1) }
func (m *Metrics) IncRejected()      { m.rejected.Add(1) }

func (m *Metrics) ReconnectSucceeded()     { m.reconnectOK.Add(1) }
func (m *Metrics) ReconnectAttemptFailed() { m.reconnectNG.Add(1) }

func (m *Metrics) DropSubscriber() { m.droppedSubscribers.Add(1) }

func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"uptime_seconds":      time.Since(m.start).Seconds(),
		"scanner_updates":     m.scannerUpdates.Load(),
		"price_updates":       m.priceUpdates.Load(),
		"opportunities":       m.opportunities.Load(),
		"rejected_messages":   m.rejected.Load(),
		"reconnects_ok":       m.reconnectOK.Load(),
		"reconnects_failed":   m.reconnectNG.Load(),
		"dropped_subscribers": m.droppedSubscribers.Load(),
	}
}
