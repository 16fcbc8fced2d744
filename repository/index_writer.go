package repository

import (
	"context"
	"time"

	"go-tabletop/dto"

	"go.uber.org/zap"
)

const indexWriteTimeout = 2 * time.Second

type indexUpdate struct {
	roomID  string
	summary *dto.RoomSummary // nil means remove
}

// IndexWriter feeds a RoomIndex from a bounded queue so callers never wait on
// redis. Updates that do not fit in the queue are dropped.
type IndexWriter struct {
	index   *RoomIndex
	updates chan indexUpdate
	logger  *zap.Logger
}

func NewIndexWriter(index *RoomIndex, buffer int, logger *zap.Logger) *IndexWriter {
	if buffer <= 0 {
		buffer = 256
	}
	return &IndexWriter{
		index:   index,
		updates: make(chan indexUpdate, buffer),
		logger:  logger,
	}
}

func (w *IndexWriter) Publish(summary dto.RoomSummary) {
	w.push(indexUpdate{roomID: summary.RoomID, summary: &summary})
}

func (w *IndexWriter) Drop(roomID string) {
	w.push(indexUpdate{roomID: roomID})
}

func (w *IndexWriter) push(u indexUpdate) {
	select {
	case w.updates <- u:
	default:
		w.logger.Warn("room index queue full, update dropped", zap.String("room_id", u.roomID))
	}
}

// Run drains the queue until ctx is done.
func (w *IndexWriter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-w.updates:
			w.apply(ctx, u)
		}
	}
}

func (w *IndexWriter) apply(ctx context.Context, u indexUpdate) {
	ctx, cancel := context.WithTimeout(ctx, indexWriteTimeout)
	defer cancel()

	var err error
	if u.summary == nil {
		err = w.index.Remove(ctx, u.roomID)
	} else {
		err = w.index.Upsert(ctx, *u.summary)
	}
	if err != nil {
		w.logger.Warn("room index write failed", zap.String("room_id", u.roomID), zap.Error(err))
	}
}
