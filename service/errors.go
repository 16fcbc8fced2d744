package service

import "errors"

// Every intent that hits one of these is dropped without a broadcast and
// without a reply to the sender.
var (
	ErrNotInRoom      = errors.New("player is not in a room")
	ErrRoomNotFound   = errors.New("room not found")
	ErrEntityExists   = errors.New("entity already exists")
	ErrEntityNotFound = errors.New("entity not found")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidArgs    = errors.New("invalid arguments")
)
