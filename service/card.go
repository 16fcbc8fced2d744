package service

import (
	"fmt"

	"go-tabletop/dto"
	"go-tabletop/entities"

	"go.uber.org/zap"
)

func handleCardCreated(h *Handler, room *entities.Room, in dto.Intent) error {
	var args dto.CardInitArgs
	if err := decodeArg(in.Args, 0, &args); err != nil {
		return err
	}
	if existing, ok := room.Cards[args.ID]; ok {
		return fmt.Errorf("%w: card %s (%s)", ErrEntityExists, existing.ID, existing.Data.Name())
	}

	card := entities.NewCard(args)
	room.Cards[card.ID] = card
	h.emit(room, dto.EventCardCreated, card.Args())
	h.index.Publish(room.Summary())
	h.logger.Debug("card created",
		zap.String("room_id", room.ID),
		zap.String("card_id", card.ID),
		zap.String("name", card.Data.Name()),
	)
	return nil
}

func handleCardDeleted(h *Handler, room *entities.Room, in dto.Intent) error {
	return deleteEntity(h, room, room.Cards, "card", dto.EventCardDeleted, in.Args)
}

func handleCardMoved(h *Handler, room *entities.Room, in dto.Intent) error {
	return moveEntity(h, room, room.Cards, "card", dto.EventCardMoved, in.Args)
}

func handleCardRotated(h *Handler, room *entities.Room, in dto.Intent) error {
	return rotateEntity(h, room, room.Cards, "card", dto.EventCardRotated, in.Args)
}
