// feedsim is a standalone upstream feed for the hydra terminal: a WebSocket
// server emitting random-walk prices, scanner sweeps across a set of pairs
// and occasional opportunities, so the dashboard can run end to end without
// any external system.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

const (
	venueA = "Binance"
	venueB = "Uniswap V3"
)

type pairState struct {
	mu    sync.Mutex
	price float64
}

func (p *pairState) step(volatility float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.price *= 1 + (rand.Float64()*2-1)*volatility
	return p.price
}

type simulator struct {
	logger   *slog.Logger
	pairs    []string
	states   map[string]*pairState
	eth      *pairState
	interval time.Duration
	oppSeq   int
	oppMu    sync.Mutex
}

func (s *simulator) nextOppID() string {
	s.oppMu.Lock()
	defer s.oppMu.Unlock()
	s.oppSeq++
	return fmt.Sprintf("opp-%d-%d", time.Now().UnixMilli(), s.oppSeq)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *simulator) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Info("client connected", "remote", r.RemoteAddr)

	// Drain client frames so close handshakes are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(v any) bool {
		if err := conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return false
		}
		return conn.WriteJSON(v) == nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-closed:
			s.logger.Info("client disconnected", "remote", r.RemoteAddr)
			return
		case <-ticker.C:
		}

		pair := s.pairs[i%len(s.pairs)]
		i++

		mid := s.states[pair].step(0.002)
		skew := (rand.Float64()*2 - 1) * 0.004
		msg := map[string]any{
			"type": "ScannerUpdate",
			"pair": pair,
			"dex_prices": map[string]float64{
				venueA: mid * (1 + skew),
				venueB: mid,
			},
		}
		if !send(msg) {
			return
		}

		if i%3 == 0 {
			if !send(map[string]any{
				"type":  "EthPrice",
				"price": s.eth.step(0.001),
			}) {
				return
			}
		}

		spreadPct := skew
		if spreadPct < 0 {
			spreadPct = -spreadPct
		}
		spreadPct *= 100
		if spreadPct > 0.25 {
			status := "SKIPPED_LOW_PROFIT"
			profit := 0.0
			if spreadPct > 0.3 {
				status = "EXECUTABLE"
				profit = spreadPct * (5 + rand.Float64()*20)
			}
			if !send(map[string]any{
				"type": "RealOpportunity",
				"opportunity": map[string]any{
					"id":         s.nextOppID(),
					"pair":       pair,
					"spread_pct": spreadPct,
					"net_profit": profit,
					"status":     status,
				},
			}) {
				return
			}
		}
	}
}

func main() {
	var (
		addr     = flag.String("addr", ":8765", "listen address")
		pairsArg = flag.String("pairs", "ETH/USDC,WBTC/USDC,ARB/USDC", "comma-separated trading pairs")
		interval = flag.Duration("interval", 500*time.Millisecond, "scanner sweep interval")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	pairs := strings.Split(*pairsArg, ",")
	states := make(map[string]*pairState, len(pairs))
	for i, p := range pairs {
		pairs[i] = strings.TrimSpace(p)
		states[pairs[i]] = &pairState{price: 100 + rand.Float64()*3000}
	}

	sim := &simulator{
		logger:   logger,
		pairs:    pairs,
		states:   states,
		eth:      &pairState{price: 3500},
		interval: *interval,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sim.handleWS)

	srv := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("feedsim listening", "addr", *addr, "pairs", len(pairs))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
}
