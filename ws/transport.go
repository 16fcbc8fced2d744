package ws

import (
	"sync"

	"go-tabletop/dto"

	"go.uber.org/zap"
)

// Transport tracks live connections and groups them by room. It implements
// service.Transport.
type Transport struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
	logger  *zap.Logger
}

func NewTransport(logger *zap.Logger) *Transport {
	return &Transport{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger,
	}
}

func (t *Transport) Register(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clients[c.id] = c
}

// Unregister forgets c and drops it from its room group.
func (t *Transport) Unregister(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.clients[c.id] == c {
		delete(t.clients, c.id)
	}
	t.leaveLocked(c.id, c.room)
}

func (t *Transport) Join(playerID, roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.clients[playerID]
	if !ok {
		return
	}
	if c.room != "" && c.room != roomID {
		t.leaveLocked(playerID, c.room)
	}
	group, ok := t.rooms[roomID]
	if !ok {
		group = make(map[string]*Client)
		t.rooms[roomID] = group
	}
	group[playerID] = c
	c.room = roomID
}

func (t *Transport) Leave(playerID, roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leaveLocked(playerID, roomID)
}

func (t *Transport) leaveLocked(playerID, roomID string) {
	group, ok := t.rooms[roomID]
	if !ok {
		return
	}
	if c, ok := group[playerID]; ok {
		delete(group, playerID)
		if c.room == roomID {
			c.room = ""
		}
	}
	if len(group) == 0 {
		delete(t.rooms, roomID)
	}
}

// Emit sends evt to every connection currently in roomID.
func (t *Transport) Emit(roomID string, evt dto.Event) {
	data, err := encodeEvent(evt)
	if err != nil {
		t.logger.Error("emit failed", zap.String("room_id", roomID), zap.Error(err))
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.rooms[roomID] {
		c.enqueue(data)
	}
}

// Send delivers evt to a single connection.
func (t *Transport) Send(playerID string, evt dto.Event) {
	data, err := encodeEvent(evt)
	if err != nil {
		t.logger.Error("send failed", zap.String("player_id", playerID), zap.Error(err))
		return
	}
	t.mu.RLock()
	c, ok := t.clients[playerID]
	t.mu.RUnlock()
	if ok {
		c.enqueue(data)
	}
}

// DisconnectRoom closes every connection still bound to roomID.
func (t *Transport) DisconnectRoom(roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	group := t.rooms[roomID]
	for id, c := range group {
		t.logger.Warn("closing connection left in closed room",
			zap.String("room_id", roomID),
			zap.String("player_id", id),
		)
		c.room = ""
		c.Close()
	}
	delete(t.rooms, roomID)
}

// CloseAll closes every registered connection and reports how many there were.
func (t *Transport) CloseAll() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.clients {
		c.Close()
	}
	return len(t.clients)
}

func (t *Transport) ConnectionCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.clients)
}
