package service

import (
	"fmt"

	"go-tabletop/dto"
	"go-tabletop/entities"

	"go.uber.org/zap"
)

func handleCardStackCreated(h *Handler, room *entities.Room, in dto.Intent) error {
	var args dto.CardStackInitArgs
	if err := decodeArg(in.Args, 0, &args); err != nil {
		return err
	}
	if _, ok := room.CardStacks[args.ID]; ok {
		return fmt.Errorf("%w: card stack %s", ErrEntityExists, args.ID)
	}

	stack := entities.NewCardStack(args)
	room.CardStacks[stack.ID] = stack
	h.emit(room, dto.EventCardStackCreated, stack.Args())
	h.index.Publish(room.Summary())
	h.logger.Debug("card stack created",
		zap.String("room_id", room.ID),
		zap.String("card_stack_id", stack.ID),
		zap.Int("cards", len(stack.Cards)),
	)
	return nil
}

func handleCardStackDeleted(h *Handler, room *entities.Room, in dto.Intent) error {
	return deleteEntity(h, room, room.CardStacks, "card stack", dto.EventCardStackDeleted, in.Args)
}

func handleCardStackShuffled(h *Handler, room *entities.Room, in dto.Intent) error {
	return replaceStackCards(h, room, dto.EventCardStackShuffled, in.Args)
}

func handleCardStackModified(h *Handler, room *entities.Room, in dto.Intent) error {
	return replaceStackCards(h, room, dto.EventCardStackModified, in.Args)
}

// replaceStackCards swaps the whole pile. The broadcast carries no arguments;
// clients fetch the new pile with state-requested.
func replaceStackCards(h *Handler, room *entities.Room, name dto.EventName, args []any) error {
	id, err := stringArg(args, 0)
	if err != nil {
		return err
	}
	var cards []dto.CardData
	if err := decodeArg(args, 1, &cards); err != nil {
		return err
	}
	stack, ok := room.CardStacks[id]
	if !ok {
		return fmt.Errorf("%w: card stack %s", ErrEntityNotFound, id)
	}
	stack.ReplaceCards(cards)
	h.emit(room, name)
	h.logger.Debug("card stack replaced",
		zap.String("room_id", room.ID),
		zap.String("card_stack_id", id),
		zap.String("event", string(name)),
		zap.Int("cards", len(cards)),
	)
	return nil
}

func handleCardStackMoved(h *Handler, room *entities.Room, in dto.Intent) error {
	return moveEntity(h, room, room.CardStacks, "card stack", dto.EventCardStackMoved, in.Args)
}

func handleCardStackRotated(h *Handler, room *entities.Room, in dto.Intent) error {
	return rotateEntity(h, room, room.CardStacks, "card stack", dto.EventCardStackRotated, in.Args)
}
