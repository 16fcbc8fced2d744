package entities

import (
	"slices"

	"go-tabletop/dto"

	"golang.org/x/exp/maps"
)

// Room is one table session: membership, host and the three entity maps.
// Each entity map is its own ID namespace.
type Room struct {
	ID     string
	HostID string

	players map[string]uint64 // playerID -> join sequence
	nextSeq uint64

	Cards      map[string]*Card
	CardStacks map[string]*CardStack
	Counters   map[string]*Counter
}

// NewRoom creates a room whose only member and host is hostID.
func NewRoom(id, hostID string) *Room {
	r := &Room{
		ID:         id,
		HostID:     hostID,
		players:    make(map[string]uint64),
		Cards:      make(map[string]*Card),
		CardStacks: make(map[string]*CardStack),
		Counters:   make(map[string]*Counter),
	}
	r.AddPlayer(hostID)
	return r
}

// AddPlayer adds a member. It reports false if the player was already in the room.
func (r *Room) AddPlayer(playerID string) bool {
	if _, ok := r.players[playerID]; ok {
		return false
	}
	r.players[playerID] = r.nextSeq
	r.nextSeq++
	return true
}

// RemovePlayer removes a member. It reports false if the player was not in the room.
func (r *Room) RemovePlayer(playerID string) bool {
	if _, ok := r.players[playerID]; !ok {
		return false
	}
	delete(r.players, playerID)
	return true
}

func (r *Room) HasPlayer(playerID string) bool {
	_, ok := r.players[playerID]
	return ok
}

func (r *Room) PlayerCount() int {
	return len(r.players)
}

func (r *Room) Empty() bool {
	return len(r.players) == 0
}

// Players returns the members ordered by join time.
func (r *Room) Players() []string {
	ids := maps.Keys(r.players)
	slices.SortFunc(ids, func(a, b string) int {
		return compareSeq(r.players[a], r.players[b])
	})
	return ids
}

// ElectHost makes the oldest remaining member host and returns it.
// It returns "" and leaves HostID untouched when the room is empty.
func (r *Room) ElectHost() string {
	players := r.Players()
	if len(players) == 0 {
		return ""
	}
	r.HostID = players[0]
	return r.HostID
}

func (r *Room) Descriptor() dto.RoomDescriptor {
	return dto.RoomDescriptor{RoomID: r.ID, HostID: r.HostID}
}

func (r *Room) Summary() dto.RoomSummary {
	players := r.Players()
	return dto.RoomSummary{
		RoomID:      r.ID,
		HostID:      r.HostID,
		Players:     players,
		PlayerCount: len(players),
		Cards:       len(r.Cards),
		CardStacks:  len(r.CardStacks),
		Counters:    len(r.Counters),
	}
}

// Snapshot copies the full room state, entities sorted by ID.
func (r *Room) Snapshot() dto.RoomState {
	state := dto.RoomState{
		RoomID:     r.ID,
		HostID:     r.HostID,
		Players:    r.Players(),
		Cards:      make([]dto.CardInitArgs, 0, len(r.Cards)),
		CardStacks: make([]dto.CardStackInitArgs, 0, len(r.CardStacks)),
		Counters:   make([]dto.CounterInitArgs, 0, len(r.Counters)),
	}
	for _, id := range sortedKeys(r.Cards) {
		state.Cards = append(state.Cards, r.Cards[id].Args())
	}
	for _, id := range sortedKeys(r.CardStacks) {
		state.CardStacks = append(state.CardStacks, r.CardStacks[id].Args())
	}
	for _, id := range sortedKeys(r.Counters) {
		state.Counters = append(state.Counters, r.Counters[id].Args())
	}
	return state
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func compareSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
