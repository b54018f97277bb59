package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
feed:
  url: ws://feed.example:9000/ws
reconnect:
  delay: 1s
  backoff: true
  max_attempts: 5
dashboard:
  initial_balance: 2500
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// Values from the file.
	assert.Equal(t, "ws://feed.example:9000/ws", cfg.Feed.URL)
	assert.Equal(t, time.Second, cfg.Reconnect.Delay)
	assert.True(t, cfg.Reconnect.Backoff)
	assert.Equal(t, 5, cfg.Reconnect.MaxAttempts)
	assert.Equal(t, 2500.0, cfg.Dashboard.InitialBalance)

	// Defaults for everything the file omits.
	assert.Equal(t, "Binance", cfg.Feed.VenueA)
	assert.Equal(t, "Uniswap V3", cfg.Feed.VenueB)
	assert.Equal(t, 16*time.Second, cfg.Reconnect.MaxDelay)
	assert.Equal(t, 100, cfg.Dashboard.PriceHistoryLimit)
	assert.Equal(t, 50, cfg.Dashboard.OpportunityLimit)
	assert.Equal(t, 100, cfg.Dashboard.LogLimit)
	assert.Equal(t, ":8092", cfg.Server.Addr)
	assert.Equal(t, time.Second, cfg.Server.PushInterval)
}
