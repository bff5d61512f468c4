package handlers

import (
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
	defaultInterval  = 5 * time.Second
	maxInterval      = 60 * time.Second
	maxIntervalMilli = 60_000 // 60s in ms
)

// wsSessionStatusMsg is pushed to the client on every tick.
type wsSessionStatusMsg struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	ExpiresInSec  int    `json:"expires_in_s,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsSessionStatus upgrades the connection and pushes the caller's session
// status on an interval until the session expires or the peer hangs up. The
// cookie is checked before upgrading, so unauthenticated callers get a plain
// 401 envelope instead of a dead socket.
func (h *Handler) wsSessionStatus(c *gin.Context) {
	token := sessionToken(c)
	if _, ok := h.services.CheckAuth(token); !ok {
		failJSON(c, http.StatusUnauthorized, msgInvalidCreds)
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

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// Send initial status immediately.
	if alive := h.sendSessionStatus(conn, token); !alive {
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
			if alive := h.sendSessionStatus(conn, token); !alive {
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=10s or ?interval_ms=10000 with bounds.
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

// Helper: sendSessionStatus writes the current status with a write deadline.
// A final {authenticated:false} is sent once the session disappears; the
// returned bool reports whether the push loop should keep running.
func (h *Handler) sendSessionStatus(conn *websocket.Conn, token string) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	sess, ok := h.services.CheckAuth(token)
	if !ok {
		_ = conn.WriteJSON(wsSessionStatusMsg{Authenticated: false})
		return false
	}

	remaining := int(time.Until(sess.ExpiresAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	err := conn.WriteJSON(wsSessionStatusMsg{
		Authenticated: true,
		Username:      sess.Username,
		ExpiresInSec:  remaining,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		return false
	}
	return true
}
