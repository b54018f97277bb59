package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hydra/internal/config"
	"hydra/internal/feed"
	"hydra/internal/metrics"
	"hydra/internal/server"
	"hydra/internal/terminal"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	start := time.Now()
	m := metrics.New(start)
	state := terminal.NewState(cfg.Dashboard, cfg.Feed.VenueA, cfg.Feed.VenueB)

	events := make(chan feed.Event, 256)
	client := feed.NewClient(logger, cfg.Feed, cfg.Reconnect, m)
	reducer := terminal.NewReducer(logger, state, events)

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		PushInterval: cfg.Server.PushInterval,
		Logger:       logger,
		State:        state,
		Metrics:      m,
		RunID:        newRunID(),
		Start:        start,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go reducer.Run(ctx)
	go func() {
		if err := client.Run(ctx, events); err != nil {
			logger.Error("feed client stopped", "error", err)
			stop()
		}
	}()
	go func() {
		logger.Info("http listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	_ = srv.Shutdown(shCtx)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newRunID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
