package api

import (
	"net/http"
	"sync"
	"time"

	models "BuildPulse/internal/domain/models"
	xlogger "BuildPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	wsSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Browsers connect from the ERP frontend origin; CORS policy is
	// enforced at the HTTP middleware layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsEnvelope is the frame pushed to subscribers.
type wsEnvelope struct {
	Type   string             `json:"type"` // "snapshot" or "alerts"
	Alerts []models.AlertItem `json:"alerts"`
}

// AlertSource provides the latest full alert list for new subscribers.
type AlertSource interface {
	CurrentAlerts() []models.AlertItem
}

type wsClient struct {
	conn *websocket.Conn
	send chan wsEnvelope
}

// AlertsWSHandler fans detected alerts out to websocket subscribers. New
// connections receive the current alert list, then incremental batches.
type AlertsWSHandler struct {
	logger *xlogger.Logger
	source AlertSource

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewAlertsWSHandler(logger *xlogger.Logger, source AlertSource) *AlertsWSHandler {
	return &AlertsWSHandler{
		logger:  logger,
		source:  source,
		clients: make(map[*wsClient]struct{}),
	}
}

func (h *AlertsWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/alerts", h.Subscribe)
}

// Broadcast queues a batch of newly raised alerts to every subscriber.
// Slow clients are dropped rather than blocking the sweep.
func (h *AlertsWSHandler) Broadcast(alerts []models.AlertItem) {
	if len(alerts) == 0 {
		return
	}
	env := wsEnvelope{Type: "alerts", Alerts: alerts}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- env:
		default:
			go h.drop(c)
		}
	}
}

func (h *AlertsWSHandler) Subscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}

	client := &wsClient{conn: conn, send: make(chan wsEnvelope, wsSendBuffer)}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("ws client connected",
		xlogger.String("remote", conn.RemoteAddr().String()),
		xlogger.Int("clients", n))

	if h.source != nil {
		client.send <- wsEnvelope{Type: "snapshot", Alerts: h.source.CurrentAlerts()}
	}

	go h.writePump(client)
	go h.readPump(client)
	return nil
}

// ClientCount returns the number of connected subscribers.
func (h *AlertsWSHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all subscribers.
func (h *AlertsWSHandler) Close() {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*wsClient]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}

func (h *AlertsWSHandler) drop(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.mu.Unlock()
	close(c.send)
	h.logger.Warn("ws client dropped", xlogger.String("remote", c.conn.RemoteAddr().String()))
}

func (h *AlertsWSHandler) writePump(c *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(wsWriteWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteJSON(env); err != nil {
				h.drop(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(c)
				return
			}
		}
	}
}

// readPump discards inbound frames; the alerts stream is one-way.
func (h *AlertsWSHandler) readPump(c *wsClient) {
	defer h.drop(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
