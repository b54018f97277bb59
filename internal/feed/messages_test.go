package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	venueA = "Binance"
	venueB = "Uniswap V3"
)

func TestDecodeScannerUpdate(t *testing.T) {
	data := []byte(`{"type":"ScannerUpdate","pair":"ETH/USDC","dex_prices":{"Binance":3500,"Uniswap V3":3490}}`)

	ev, err := Decode(data, venueA, venueB)
	require.NoError(t, err)

	su, ok := ev.(ScannerUpdate)
	require.True(t, ok)
	assert.Equal(t, "ETH/USDC", su.Pair)
	assert.Equal(t, 3500.0, su.VenuePrices[venueA])
	assert.Equal(t, 3490.0, su.VenuePrices[venueB])
}

func TestDecodeEthPrice(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"EthPrice","price":3500.12}`), venueA, venueB)
	require.NoError(t, err)

	pu, ok := ev.(PriceUpdate)
	require.True(t, ok)
	assert.Equal(t, 3500.12, pu.Price)
}

func TestDecodeRealOpportunity(t *testing.T) {
	data := []byte(`{"type":"RealOpportunity","opportunity":{"id":"opp-1","pair":"ETH/USDC","spread_pct":0.31,"net_profit":12.5,"status":"EXECUTABLE"}}`)

	ev, err := Decode(data, venueA, venueB)
	require.NoError(t, err)

	op, ok := ev.(OpportunityEvent)
	require.True(t, ok)
	assert.Equal(t, "opp-1", op.ID)
	assert.Equal(t, 12.5, op.NetProfit)
	assert.Equal(t, StatusExecutable, op.Status)
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"missing type", `{"pair":"ETH/USDC"}`},
		{"unknown type", `{"type":"Heartbeat"}`},
		{"price missing", `{"type":"EthPrice"}`},
		{"price zero", `{"type":"EthPrice","price":0}`},
		{"price negative", `{"type":"EthPrice","price":-5}`},
		{"scanner missing pair", `{"type":"ScannerUpdate","dex_prices":{"Binance":1,"Uniswap V3":1}}`},
		{"scanner missing venue", `{"type":"ScannerUpdate","pair":"ETH/USDC","dex_prices":{"Binance":3500}}`},
		{"scanner null price", `{"type":"ScannerUpdate","pair":"ETH/USDC","dex_prices":{"Binance":3500,"Uniswap V3":null}}`},
		{"scanner zero price", `{"type":"ScannerUpdate","pair":"ETH/USDC","dex_prices":{"Binance":3500,"Uniswap V3":0}}`},
		{"opportunity missing", `{"type":"RealOpportunity"}`},
		{"opportunity no id", `{"type":"RealOpportunity","opportunity":{"pair":"ETH/USDC","spread_pct":0.3,"net_profit":1,"status":"EXECUTABLE"}}`},
		{"opportunity no profit", `{"type":"RealOpportunity","opportunity":{"id":"x","pair":"ETH/USDC","spread_pct":0.3,"status":"EXECUTABLE"}}`},
		{"opportunity no status", `{"type":"RealOpportunity","opportunity":{"id":"x","pair":"ETH/USDC","spread_pct":0.3,"net_profit":1}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Decode([]byte(tc.data), venueA, venueB)
			assert.Error(t, err)
			assert.Nil(t, ev)
		})
	}
}

func TestDecodeOpportunityZeroProfitAllowed(t *testing.T) {
	// Skipped opportunities legitimately carry zero profit.
	data := []byte(`{"type":"RealOpportunity","opportunity":{"id":"opp-1","pair":"ETH/USDC","spread_pct":0.05,"net_profit":0,"status":"SKIPPED_LOW_PROFIT"}}`)

	ev, err := Decode(data, venueA, venueB)
	require.NoError(t, err)
	op := ev.(OpportunityEvent)
	assert.Equal(t, 0.0, op.NetProfit)
}
