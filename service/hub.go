package service

import (
	"context"
	"errors"
	"fmt"

	"go-tabletop/dto"

	"go.uber.org/zap"
)

var ErrHubStopped = errors.New("hub stopped")

type job struct {
	fn   func(*Handler)
	done chan struct{}
}

// Hub owns a Handler and runs every intent, disconnect and query against it
// on a single goroutine, one at a time, in arrival order.
type Hub struct {
	handler *Handler
	jobs    chan job
	stopped chan struct{}
	logger  *zap.Logger
}

func NewHub(handler *Handler, queueSize int, logger *zap.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		handler: handler,
		jobs:    make(chan job, queueSize),
		stopped: make(chan struct{}),
		logger:  logger,
	}
}

// Run processes jobs until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.stopped)
	h.logger.Info("hub started")
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("hub stopped")
			return ctx.Err()
		case j := <-h.jobs:
			h.run(j)
		}
	}
}

func (h *Hub) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("hub job panicked", zap.Any("panic", r))
		}
		if j.done != nil {
			close(j.done)
		}
	}()
	j.fn(h.handler)
}

func (h *Hub) enqueue(ctx context.Context, j job) error {
	select {
	case h.jobs <- j:
		return nil
	case <-h.stopped:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit queues an intent without waiting for it to be applied.
func (h *Hub) Submit(ctx context.Context, in dto.Intent) error {
	return h.enqueue(ctx, job{fn: func(handler *Handler) {
		_ = handler.Handle(in)
	}})
}

// Do runs fn on the hub goroutine and waits for it to finish.
func (h *Hub) Do(ctx context.Context, fn func(*Handler)) error {
	done := make(chan struct{})
	if err := h.enqueue(ctx, job{fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-h.stopped:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect removes playerID and waits until the leave has been applied.
func (h *Hub) Disconnect(ctx context.Context, playerID string) error {
	return h.Do(ctx, func(handler *Handler) {
		if err := handler.Leave(playerID); err != nil {
			h.logger.Debug("disconnect without room",
				zap.String("player_id", playerID),
				zap.Error(err),
			)
		}
	})
}

// RoomList returns the summaries of all live rooms sorted by ID.
func (h *Hub) RoomList(ctx context.Context) ([]dto.RoomSummary, error) {
	var summaries []dto.RoomSummary
	err := h.Do(ctx, func(handler *Handler) {
		rooms := handler.Rooms().List()
		summaries = make([]dto.RoomSummary, 0, len(rooms))
		for _, room := range rooms {
			summaries = append(summaries, room.Summary())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return summaries, nil
}

// RoomState returns a snapshot of roomID, or ErrRoomNotFound.
func (h *Hub) RoomState(ctx context.Context, roomID string) (dto.RoomState, error) {
	var (
		state dto.RoomState
		found bool
	)
	err := h.Do(ctx, func(handler *Handler) {
		room, ok := handler.Rooms().Get(roomID)
		if !ok {
			return
		}
		state, found = room.Snapshot(), true
	})
	if err != nil {
		return dto.RoomState{}, fmt.Errorf("room state: %w", err)
	}
	if !found {
		return dto.RoomState{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return state, nil
}
