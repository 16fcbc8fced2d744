package service

import (
	"fmt"

	"go-tabletop/dto"
	"go-tabletop/entities"
)

// Shared delete/move/rotate paths for the three entity maps.

func deleteEntity[T any](h *Handler, room *entities.Room, m map[string]T, kind string, name dto.EventName, args []any) error {
	id, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return fmt.Errorf("%w: %s %s", ErrEntityNotFound, kind, id)
	}
	delete(m, id)
	h.emit(room, name, id)
	h.index.Publish(room.Summary())
	return nil
}

func moveEntity[T entities.Placeable](h *Handler, room *entities.Room, m map[string]T, kind string, name dto.EventName, args []any) error {
	id, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	x, err := numberArg(args, 1)
	if err != nil {
		return err
	}
	y, err := numberArg(args, 2)
	if err != nil {
		return err
	}
	e, ok := m[id]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrEntityNotFound, kind, id)
	}
	e.MoveTo(x, y)
	h.emit(room, name, id, x, y)
	return nil
}

func rotateEntity[T entities.Placeable](h *Handler, room *entities.Room, m map[string]T, kind string, name dto.EventName, args []any) error {
	id, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	rotation, err := numberArg(args, 1)
	if err != nil {
		return err
	}
	e, ok := m[id]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrEntityNotFound, kind, id)
	}
	e.RotateTo(rotation)
	h.emit(room, name, id, rotation)
	return nil
}
