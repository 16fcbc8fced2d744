package service

import (
	"slices"

	"go-tabletop/entities"

	"golang.org/x/exp/maps"
)

// Registry maps room IDs to live rooms. A room exists exactly while it has
// at least one member.
type Registry struct {
	rooms map[string]*entities.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*entities.Room)}
}

func (g *Registry) Get(roomID string) (*entities.Room, bool) {
	room, ok := g.rooms[roomID]
	return room, ok
}

// Create registers a new room with hostID as its only member. The caller
// must have checked that roomID is free.
func (g *Registry) Create(roomID, hostID string) *entities.Room {
	room := entities.NewRoom(roomID, hostID)
	g.rooms[roomID] = room
	return room
}

func (g *Registry) Delete(roomID string) {
	delete(g.rooms, roomID)
}

func (g *Registry) Len() int {
	return len(g.rooms)
}

// List returns the live rooms sorted by ID.
func (g *Registry) List() []*entities.Room {
	ids := maps.Keys(g.rooms)
	slices.Sort(ids)
	rooms := make([]*entities.Room, 0, len(ids))
	for _, id := range ids {
		rooms = append(rooms, g.rooms[id])
	}
	return rooms
}
