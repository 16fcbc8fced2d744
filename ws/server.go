package ws

import (
	"context"
	"net/http"
	"slices"
	"time"

	"go-tabletop/config"
	"go-tabletop/dto"
	"go-tabletop/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const disconnectTimeout = 5 * time.Second

// Server upgrades HTTP requests to websocket connections and wires each one
// to the hub.
type Server struct {
	hub       *service.Hub
	transport *Transport
	cfg       config.WebSocketConfig
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

func NewServer(hub *service.Hub, transport *Transport, cfg config.Config, logger *zap.Logger) *Server {
	origins := cfg.Server.AllowOrigins
	return &Server{
		hub:       hub,
		transport: transport,
		cfg:       cfg.WebSocket,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		logger: logger,
	}
}

// generatePlayerID gives every connection its own identity.
func generatePlayerID() string {
	return uuid.New().String()
}

// HandleWebSocket serves one connection until it closes.
func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(generatePlayerID(), conn, s.cfg, s.logger)
	s.transport.Register(client)
	go client.writePump()
	s.logger.Info("player connected",
		zap.String("player_id", client.ID()),
		zap.String("remote_addr", c.Request.RemoteAddr),
	)

	s.transport.Send(client.ID(), dto.NewEvent(dto.EventInit, client.ID()))
	client.readPump(c.Request.Context(), s.hub)

	// The leave must be applied before the connection is torn down.
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	if err := s.hub.Disconnect(ctx, client.ID()); err != nil {
		s.logger.Warn("disconnect not processed", zap.String("player_id", client.ID()), zap.Error(err))
	}
	s.transport.Unregister(client)
	client.Close()
	s.logger.Info("player disconnected", zap.String("player_id", client.ID()))
}
