package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	Feed      FeedConfig
	Reconnect ReconnectConfig
	Dashboard DashboardConfig
	Server    ServerConfig
}

// FeedConfig defines the upstream WebSocket feed settings.
type FeedConfig struct {
	URL    string `mapstructure:"url"`
	VenueA string `mapstructure:"venue_a"`
	VenueB string `mapstructure:"venue_b"`
}

// ReconnectConfig defines the reconnect policy for the feed connection.
// MaxAttempts of zero means retry forever.
type ReconnectConfig struct {
	Delay       time.Duration `mapstructure:"delay"`
	Backoff     bool          `mapstructure:"backoff"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// DashboardConfig defines the bounded-state settings of the terminal.
type DashboardConfig struct {
	InitialBalance    float64 `mapstructure:"initial_balance"`
	PriceHistoryLimit int     `mapstructure:"price_history_limit"`
	OpportunityLimit  int     `mapstructure:"opportunity_limit"`
	LogLimit          int     `mapstructure:"log_limit"`
}

// ServerConfig defines the HTTP view settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	PushInterval time.Duration `mapstructure:"push_interval"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("feed.url", "ws://localhost:8765/ws")
	viper.SetDefault("feed.venue_a", "Binance")
	viper.SetDefault("feed.venue_b", "Uniswap V3")
	viper.SetDefault("reconnect.delay", 3*time.Second)
	viper.SetDefault("reconnect.backoff", false)
	viper.SetDefault("reconnect.max_delay", 16*time.Second)
	viper.SetDefault("reconnect.max_attempts", 0)
	viper.SetDefault("dashboard.initial_balance", 10000.0)
	viper.SetDefault("dashboard.price_history_limit", 100)
	viper.SetDefault("dashboard.opportunity_limit", 50)
	viper.SetDefault("dashboard.log_limit", 100)
	viper.SetDefault("server.addr", ":8092")
	viper.SetDefault("server.push_interval", time.Second)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// Defaults cover everything, so a missing file is not fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
