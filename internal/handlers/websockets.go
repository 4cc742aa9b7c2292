package handlers

import (
	"bytes"
	"context"
	"encoding/json"
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
	defaultInterval  = 2 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	wsTypeCart = "cart"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Browser origins are already filtered by CORS
// for REST; the stream itself requires a bearer token.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Watch cart
// @Description  WebSocket. Sends {"type":"cart","data":[...]} on connect and whenever the cart changes.
// @Tags         cart
// @Param        interval     query  string  false  "Poll interval as a Go duration (max 10s)"  example(2s)
// @Param        interval_ms  query  int     false  "Poll interval in milliseconds (max 10000)"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /cart/ws [get]
// @Security     BearerAuth
func (h *Handler) watchCart(c *gin.Context) {
	userID := currentUserID(c)
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	last, err := h.sendCart(ctx, conn, userID, nil)
	if err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "user_id", userID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
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
			if last, err = h.sendCart(ctx, conn, userID, last); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "user_id", userID, "err", err)
				}
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
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

// Helper: startReader drains incoming messages to handle control frames and detect closure.
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

// Helper: sendCart loads the cart and writes it when it differs from last.
// It returns the encoding that was current after the call.
func (h *Handler) sendCart(ctx context.Context, conn *websocket.Conn, userID string, last []byte) ([]byte, error) {
	items, err := h.services.Cart.Items(ctx, userID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_get_cart_failed", "user_id", userID, "err", err)
		}
		return last, err
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return last, err
	}
	if last != nil && bytes.Equal(payload, last) {
		return last, nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(wsEnvelope{Type: wsTypeCart, Data: json.RawMessage(payload)}); err != nil {
		return last, err
	}
	return payload, nil
}
