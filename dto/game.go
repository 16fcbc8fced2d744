package dto

// EventName names a wire event.
type EventName string

const (
	EventInit           EventName = "init"
	EventJoin           EventName = "join"
	EventPlayerJoined   EventName = "player-joined"
	EventPlayerLeft     EventName = "player-left"
	EventRoomCreated    EventName = "room-created"
	EventStateRequested EventName = "state-requested"
	EventRoomState      EventName = "room-state"

	EventCardCreated EventName = "card-created"
	EventCardDeleted EventName = "card-deleted"
	EventCardMoved   EventName = "card-moved"
	EventCardRotated EventName = "card-rotated"

	EventCounterCreated     EventName = "counter-created"
	EventCounterDeleted     EventName = "counter-deleted"
	EventCounterValsChanged EventName = "counter-vals-changed"
	EventCounterMoved       EventName = "counter-moved"
	EventCounterRotated     EventName = "counter-rotated"

	EventCardStackCreated  EventName = "cardstack-created"
	EventCardStackDeleted  EventName = "cardstack-deleted"
	EventCardStackShuffled EventName = "cardstack-shuffled"
	EventCardStackModified EventName = "cardstack-modified"
	EventCardStackMoved    EventName = "cardstack-moved"
	EventCardStackRotated  EventName = "cardstack-rotated"
)

// Intent is one inbound request from a connected player.
type Intent struct {
	PlayerID string
	Event    EventName
	Args     []any
}

// Event is one outbound message. Args are the ordered positional arguments.
type Event struct {
	Name EventName `json:"event"`
	Args []any     `json:"args"`
}

// NewEvent builds an Event, never leaving Args nil so it encodes as [].
func NewEvent(name EventName, args ...any) Event {
	if args == nil {
		args = []any{}
	}
	return Event{Name: name, Args: args}
}

// Frame is the JSON shape of an inbound websocket message.
type Frame struct {
	Event EventName `json:"event"`
	Args  []any     `json:"args"`
}
