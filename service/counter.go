package service

import (
	"fmt"

	"go-tabletop/dto"
	"go-tabletop/entities"

	"go.uber.org/zap"
)

func handleCounterCreated(h *Handler, room *entities.Room, in dto.Intent) error {
	var args dto.CounterInitArgs
	if err := decodeArg(in.Args, 0, &args); err != nil {
		return err
	}
	if _, ok := room.Counters[args.ID]; ok {
		return fmt.Errorf("%w: counter %s", ErrEntityExists, args.ID)
	}

	counter := entities.NewCounter(args)
	room.Counters[counter.ID] = counter
	h.emit(room, dto.EventCounterCreated, counter.Args())
	h.index.Publish(room.Summary())
	h.logger.Debug("counter created",
		zap.String("room_id", room.ID),
		zap.String("counter_id", counter.ID),
	)
	return nil
}

func handleCounterDeleted(h *Handler, room *entities.Room, in dto.Intent) error {
	return deleteEntity(h, room, room.Counters, "counter", dto.EventCounterDeleted, in.Args)
}

// Unlike the card stack payload events, vals-changed echoes the new values.
func handleCounterValsChanged(h *Handler, room *entities.Room, in dto.Intent) error {
	id, err := stringArg(in.Args, 0)
	if err != nil {
		return err
	}
	vals, err := numbersArg(in.Args, 1)
	if err != nil {
		return err
	}
	counter, ok := room.Counters[id]
	if !ok {
		return fmt.Errorf("%w: counter %s", ErrEntityNotFound, id)
	}
	counter.ReplaceVals(vals)
	h.emit(room, dto.EventCounterValsChanged, id, counter.Args().Vals)
	return nil
}

func handleCounterMoved(h *Handler, room *entities.Room, in dto.Intent) error {
	return moveEntity(h, room, room.Counters, "counter", dto.EventCounterMoved, in.Args)
}

func handleCounterRotated(h *Handler, room *entities.Room, in dto.Intent) error {
	return rotateEntity(h, room, room.Counters, "counter", dto.EventCounterRotated, in.Args)
}
