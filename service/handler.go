package service

import (
	"fmt"

	"go-tabletop/dto"
	"go-tabletop/entities"

	"go.uber.org/zap"
)

// Transport delivers events to connections and groups connections by room.
// Sends are fire-and-forget.
type Transport interface {
	Join(playerID, roomID string)
	Leave(playerID, roomID string)
	Emit(roomID string, evt dto.Event)
	Send(playerID string, evt dto.Event)
	DisconnectRoom(roomID string)
}

// RoomIndex receives room summaries whenever they change. Implementations
// must not block.
type RoomIndex interface {
	Publish(summary dto.RoomSummary)
	Drop(roomID string)
}

type nopIndex struct{}

func (nopIndex) Publish(dto.RoomSummary) {}
func (nopIndex) Drop(string)             {}

type intentHandler func(h *Handler, room *entities.Room, in dto.Intent) error

var intentHandlers = map[dto.EventName]intentHandler{
	dto.EventStateRequested: handleStateRequested,

	dto.EventCardCreated: handleCardCreated,
	dto.EventCardDeleted: handleCardDeleted,
	dto.EventCardMoved:   handleCardMoved,
	dto.EventCardRotated: handleCardRotated,

	dto.EventCounterCreated:     handleCounterCreated,
	dto.EventCounterDeleted:     handleCounterDeleted,
	dto.EventCounterValsChanged: handleCounterValsChanged,
	dto.EventCounterMoved:       handleCounterMoved,
	dto.EventCounterRotated:     handleCounterRotated,

	dto.EventCardStackCreated:  handleCardStackCreated,
	dto.EventCardStackDeleted:  handleCardStackDeleted,
	dto.EventCardStackShuffled: handleCardStackShuffled,
	dto.EventCardStackModified: handleCardStackModified,
	dto.EventCardStackMoved:    handleCardStackMoved,
	dto.EventCardStackRotated:  handleCardStackRotated,
}

// Handler applies intents to the room registry and player directory and
// emits the resulting broadcasts. It is not safe for concurrent use; the Hub
// serializes access to it.
type Handler struct {
	rooms     *Registry
	players   *Directory
	transport Transport
	index     RoomIndex
	logger    *zap.Logger
}

// NewHandler builds a Handler. index may be nil.
func NewHandler(transport Transport, index RoomIndex, logger *zap.Logger) *Handler {
	if index == nil {
		index = nopIndex{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		rooms:     NewRegistry(),
		players:   NewDirectory(),
		transport: transport,
		index:     index,
		logger:    logger,
	}
}

func (h *Handler) Rooms() *Registry {
	return h.rooms
}

func (h *Handler) Players() *Directory {
	return h.players
}

// Handle runs one intent to completion. A non-nil error means the intent was
// dropped; nothing is ever reported back to the sender.
func (h *Handler) Handle(in dto.Intent) error {
	err := h.handle(in)
	if err != nil {
		h.logger.Debug("intent dropped",
			zap.String("player_id", in.PlayerID),
			zap.String("event", string(in.Event)),
			zap.Error(err),
		)
	}
	return err
}

func (h *Handler) handle(in dto.Intent) error {
	if in.Event == dto.EventJoin || in.Event == dto.EventPlayerJoined {
		roomID, err := stringArg(in.Args, 0)
		if err != nil {
			return err
		}
		return h.Join(in.PlayerID, roomID)
	}

	fn, ok := intentHandlers[in.Event]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, in.Event)
	}
	room, err := h.roomOf(in.PlayerID)
	if err != nil {
		return err
	}
	return fn(h, room, in)
}

// Join moves playerID into roomID, leaving any previous room first. The room
// is created with playerID as host if it does not exist.
func (h *Handler) Join(playerID, roomID string) error {
	if roomID == "" {
		return fmt.Errorf("%w: empty room ID", ErrInvalidArgs)
	}

	if oldRoomID, ok := h.players.Lookup(playerID); ok && oldRoomID != roomID {
		if err := h.removeFromRoom(playerID, oldRoomID); err != nil {
			h.logger.Debug("previous room already closed",
				zap.String("room_id", oldRoomID),
				zap.String("player_id", playerID),
			)
		}
	}

	h.players.Assign(playerID, roomID)
	h.transport.Join(playerID, roomID)

	room, ok := h.rooms.Get(roomID)
	if !ok {
		room = h.rooms.Create(roomID, playerID)
		h.transport.Emit(roomID, dto.NewEvent(dto.EventRoomCreated, room.Descriptor()))
		h.logger.Info("room created",
			zap.String("room_id", roomID),
			zap.String("host_id", playerID),
		)
	} else {
		room.AddPlayer(playerID)
		h.transport.Emit(roomID, dto.NewEvent(dto.EventPlayerJoined, playerID))
		h.logger.Info("player joined room",
			zap.String("room_id", roomID),
			zap.String("player_id", playerID),
			zap.Int("players", room.PlayerCount()),
		)
	}
	h.index.Publish(room.Summary())
	return nil
}

// Leave removes a disconnecting player from the directory and their room.
func (h *Handler) Leave(playerID string) error {
	roomID, ok := h.players.Lookup(playerID)
	if !ok {
		return ErrNotInRoom
	}
	h.players.Remove(playerID)
	return h.removeFromRoom(playerID, roomID)
}

func (h *Handler) removeFromRoom(playerID, roomID string) error {
	h.transport.Leave(playerID, roomID)

	room, ok := h.rooms.Get(roomID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	room.RemovePlayer(playerID)
	h.logger.Info("player removed from room",
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
	)

	if room.Empty() {
		h.rooms.Delete(roomID)
		h.transport.DisconnectRoom(roomID)
		h.index.Drop(roomID)
		h.logger.Info("closed empty room", zap.String("room_id", roomID))
		return nil
	}

	if room.HostID == playerID {
		newHost := room.ElectHost()
		h.transport.Emit(roomID, dto.NewEvent(dto.EventPlayerLeft, playerID))
		h.logger.Info("host migrated",
			zap.String("room_id", roomID),
			zap.String("old_host_id", playerID),
			zap.String("new_host_id", newHost),
		)
	}
	h.index.Publish(room.Summary())
	return nil
}

func (h *Handler) roomOf(playerID string) (*entities.Room, error) {
	roomID, ok := h.players.Lookup(playerID)
	if !ok {
		return nil, ErrNotInRoom
	}
	room, ok := h.rooms.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return room, nil
}

func (h *Handler) emit(room *entities.Room, name dto.EventName, args ...any) {
	h.transport.Emit(room.ID, dto.NewEvent(name, args...))
}

func handleStateRequested(h *Handler, room *entities.Room, in dto.Intent) error {
	h.transport.Send(in.PlayerID, dto.NewEvent(dto.EventRoomState, room.Snapshot()))
	return nil
}
