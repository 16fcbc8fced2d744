package ws

import (
	"context"
	"sync"
	"time"

	"go-tabletop/config"
	"go-tabletop/service"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one websocket connection. Its ID is the player's identity for
// the lifetime of the connection.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	closed chan struct{}
	once   sync.Once
	cfg    config.WebSocketConfig
	logger *zap.Logger

	room string // guarded by Transport.mu
}

func newClient(id string, conn *websocket.Conn, cfg config.WebSocketConfig, logger *zap.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, cfg.SendBuffer),
		closed: make(chan struct{}),
		cfg:    cfg,
		logger: logger.With(zap.String("player_id", id)),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Close asks the write pump to send a close frame and drop the connection.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.closed)
	})
}

// enqueue never blocks. A client whose buffer is full is closed.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		c.logger.Warn("send buffer full, closing connection")
		c.Close()
		return false
	}
}

// readPump feeds inbound frames to the hub until the connection fails.
func (c *Client) readPump(ctx context.Context, hub *service.Hub) {
	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info("connection lost", zap.Error(err))
			}
			return
		}
		intent, err := decodeIntent(c.id, msg)
		if err != nil {
			c.logger.Debug("frame dropped", zap.Error(err))
			continue
		}
		if err := hub.Submit(ctx, intent); err != nil {
			c.logger.Warn("hub unavailable", zap.Error(err))
			return
		}
	}
}

// writePump is the only goroutine writing to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.closed:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
