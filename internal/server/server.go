package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"hydra/internal/metrics"
	"hydra/internal/terminal"
)

// Config holds the HTTP view dependencies.
type Config struct {
	Addr         string
	PushInterval time.Duration
	Logger       *slog.Logger
	State        *terminal.State
	Metrics      *metrics.Metrics
	RunID        string
	Start        time.Time
}

type handlers struct {
	cfg Config
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// New builds the HTTP server for the dashboard view. All handlers are pure
// presentation over State.Snapshot; none of them mutate state.
func New(cfg Config) *http.Server {
	h := &handlers{cfg: cfg}

	r := mux.NewRouter()
	r.HandleFunc("/", h.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/snapshot", h.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", h.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", h.handleWS)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

func (h *handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, dashboardHTML)
}

func (h *handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cfg.State.Snapshot())
}

func (h *handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cfg.State.Snapshot().Stats)
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.cfg.Metrics.Snapshot()
	snap["run_id"] = h.cfg.RunID
	snap["started_at"] = h.cfg.Start.Format(time.RFC3339)
	snap["feed_connected"] = h.cfg.State.Connected()
	writeJSON(w, snap)
}

// handleWS pushes a snapshot on connect and then on a fixed cadence. A
// subscriber that cannot keep up is dropped; ingestion never blocks on it.
func (h *handlers) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.Logger.Warn("server: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// A close frame is a deliberate goodbye; everything else that ends the
	// session counts as a dropped subscriber. The flag must be set before
	// the close response goes out, or a concurrent push could observe the
	// write failure first.
	var clientClosed atomic.Bool
	conn.SetCloseHandler(func(code int, text string) error {
		clientClosed.Store(true)
		msg := websocket.FormatCloseMessage(code, "")
		return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	})

	// Drain client frames so control messages are processed. Closing the
	// connection on read failure makes the next push fail, which is the
	// single exit path of the session.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	push := func() bool {
		err := conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err == nil {
			err = conn.WriteJSON(h.cfg.State.Snapshot())
		}
		if err != nil {
			if !clientClosed.Load() {
				h.cfg.Metrics.DropSubscriber()
			}
			return false
		}
		return true
	}

	if !push() {
		return
	}

	ticker := time.NewTicker(h.cfg.PushInterval)
	defer ticker.Stop()

	for range ticker.C {
		if !push() {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
