package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 30 * time.Second
	maxInterval      = 10 * time.Minute
	maxIntervalMilli = 600_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// riskSnapshot is the periodic payload: whichever schedule dimensions are
// configured for the pet, evaluated fresh each tick.
type riskSnapshot struct {
	PetID     string      `json:"pet_id"`
	Feeding   interface{} `json:"feeding,omitempty"`
	Calcium   interface{} `json:"calcium,omitempty"`
	VitaminD3 interface{} `json:"vitamin_d3,omitempty"`
	At        time.Time   `json:"at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsRiskStream pushes a pet's schedule risk snapshot on an interval until
// the client disconnects.
func (h *Handler) wsRiskStream(c *gin.Context) {
	petID := c.Query("pet_id")
	if petID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_id is required"})
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine handles control frames and detects disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := h.sendRiskSnapshot(c.Request.Context(), conn, petID); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendRiskSnapshot(c.Request.Context(), conn, petID); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=45s or ?interval_ms=45000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect
// closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendRiskSnapshot evaluates the pet's schedule dimensions and writes one
// envelope with a write deadline. Evaluator errors are reported to the
// client in-band; absent dimensions are simply omitted.
func (h *Handler) sendRiskSnapshot(ctx context.Context, conn *websocket.Conn, petID string) error {
	snap := riskSnapshot{PetID: petID, At: time.Now().UTC()}

	feeding, err := h.services.Schedule.EvaluateFeeding(ctx, petID)
	if err != nil {
		return h.writeEnvelope(conn, wsEnvelope{Type: "error", Error: "feeding evaluation failed"})
	}
	if feeding != nil {
		snap.Feeding = feeding
	}

	calcium, err := h.services.Schedule.EvaluateCalcium(ctx, petID)
	if err != nil {
		return h.writeEnvelope(conn, wsEnvelope{Type: "error", Error: "calcium evaluation failed"})
	}
	if calcium != nil {
		snap.Calcium = calcium
	}

	d3, err := h.services.Schedule.EvaluateVitaminD3(ctx, petID)
	if err != nil {
		return h.writeEnvelope(conn, wsEnvelope{Type: "error", Error: "vitamin D3 evaluation failed"})
	}
	if d3 != nil {
		snap.VitaminD3 = d3
	}

	return h.writeEnvelope(conn, wsEnvelope{Type: "risk", Data: snap})
}

func (h *Handler) writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
