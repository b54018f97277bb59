package feed

import (
	"encoding/json"
	"fmt"
	"math"
)

// Wire message type tags.
const (
	TypeScannerUpdate   = "ScannerUpdate"
	TypeEthPrice        = "EthPrice"
	TypeRealOpportunity = "RealOpportunity"
)

// StatusExecutable is the wire status that marks an opportunity as executed
// upstream. Every other status is recorded as skipped.
const StatusExecutable = "EXECUTABLE"

// Event is one decoded feed event delivered to the reducer. Connection
// lifecycle changes travel on the same channel as data messages so the
// reducer sees everything in arrival order.
type Event interface {
	isEvent()
}

// Connected signals that the upstream connection was established.
type Connected struct{}

// Disconnected signals that the upstream connection was lost.
type Disconnected struct{}

// ScannerUpdate carries one pair's fresh venue prices.
type ScannerUpdate struct {
	Pair        string
	VenuePrices map[string]float64
}

// PriceUpdate carries one chart price sample.
type PriceUpdate struct {
	Price float64
}

// OpportunityEvent carries one detected arbitrage event. Status is the raw
// upstream status string.
type OpportunityEvent struct {
	ID        string
	Pair      string
	SpreadPct float64
	NetProfit float64
	Status    string
}

func (Connected) isEvent()        {}
func (Disconnected) isEvent()     {}
func (ScannerUpdate) isEvent()    {}
func (PriceUpdate) isEvent()      {}
func (OpportunityEvent) isEvent() {}

type envelope struct {
	Type        string              `json:"type"`
	Pair        string              `json:"pair"`
	DexPrices   map[string]*float64 `json:"dex_prices"`
	Price       *float64            `json:"price"`
	Opportunity *wireOpportunity    `json:"opportunity"`
}

type wireOpportunity struct {
	ID        string   `json:"id"`
	Pair      string   `json:"pair"`
	SpreadPct *float64 `json:"spread_pct"`
	NetProfit *float64 `json:"net_profit"`
	Status    string   `json:"status"`
}

// Decode parses and validates one inbound message. Messages with missing or
// non-finite numeric fields are rejected rather than coerced to zero.
func Decode(data []byte, venueA, venueB string) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	switch env.Type {
	case TypeScannerUpdate:
		return decodeScannerUpdate(env, venueA, venueB)
	case TypeEthPrice:
		if err := checkPrice(env.Price, "price"); err != nil {
			return nil, fmt.Errorf("%s: %w", TypeEthPrice, err)
		}
		return PriceUpdate{Price: *env.Price}, nil
	case TypeRealOpportunity:
		return decodeOpportunity(env)
	case "":
		return nil, fmt.Errorf("missing message type")
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
}

func decodeScannerUpdate(env envelope, venueA, venueB string) (Event, error) {
	if env.Pair == "" {
		return nil, fmt.Errorf("%s: missing pair", TypeScannerUpdate)
	}
	prices := make(map[string]float64, 2)
	for _, venue := range []string{venueA, venueB} {
		p, ok := env.DexPrices[venue]
		if !ok || p == nil {
			return nil, fmt.Errorf("%s: missing price for venue %q", TypeScannerUpdate, venue)
		}
		if !finitePositive(*p) {
			return nil, fmt.Errorf("%s: invalid price %v for venue %q", TypeScannerUpdate, *p, venue)
		}
		prices[venue] = *p
	}
	return ScannerUpdate{Pair: env.Pair, VenuePrices: prices}, nil
}

func decodeOpportunity(env envelope) (Event, error) {
	op := env.Opportunity
	if op == nil {
		return nil, fmt.Errorf("%s: missing opportunity", TypeRealOpportunity)
	}
	if op.ID == "" {
		return nil, fmt.Errorf("%s: missing id", TypeRealOpportunity)
	}
	if op.Pair == "" {
		return nil, fmt.Errorf("%s: missing pair", TypeRealOpportunity)
	}
	if op.Status == "" {
		return nil, fmt.Errorf("%s: missing status", TypeRealOpportunity)
	}
	if op.SpreadPct == nil || math.IsNaN(*op.SpreadPct) || math.IsInf(*op.SpreadPct, 0) {
		return nil, fmt.Errorf("%s: missing or invalid spread_pct", TypeRealOpportunity)
	}
	if op.NetProfit == nil || math.IsNaN(*op.NetProfit) || math.IsInf(*op.NetProfit, 0) {
		return nil, fmt.Errorf("%s: missing or invalid net_profit", TypeRealOpportunity)
	}
	return OpportunityEvent{
		ID:        op.ID,
		Pair:      op.Pair,
		SpreadPct: *op.SpreadPct,
		NetProfit: *op.NetProfit,
		Status:    op.Status,
	}, nil
}

func checkPrice(p *float64, field string) error {
	if p == nil {
		return fmt.Errorf("missing %s", field)
	}
	if !finitePositive(*p) {
		return fmt.Errorf("invalid %s %v", field, *p)
	}
	return nil
}

func finitePositive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
