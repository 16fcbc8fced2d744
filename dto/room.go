package dto

// CardData is the opaque card blob (name + catalog metadata).
type CardData map[string]any

// Name returns the card's display name, or "" when absent.
func (d CardData) Name() string {
	name, _ := d["name"].(string)
	return name
}

type CardInitArgs struct {
	ID       string   `json:"ID"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation float64  `json:"rotation"`
	Data     CardData `json:"data"`
}

type CardStackInitArgs struct {
	ID       string     `json:"ID"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation float64    `json:"rotation"`
	Cards    []CardData `json:"cards"`
}

type CounterInitArgs struct {
	ID       string    `json:"ID"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation float64   `json:"rotation"`
	Vals     []float64 `json:"vals"`
}

// RoomDescriptor is the payload of room-created.
type RoomDescriptor struct {
	RoomID string `json:"roomID"`
	HostID string `json:"hostID"`
}

// RoomState is a full snapshot of one room.
type RoomState struct {
	RoomID     string              `json:"roomID"`
	HostID     string              `json:"hostID"`
	Players    []string            `json:"players"`
	Cards      []CardInitArgs      `json:"cards"`
	CardStacks []CardStackInitArgs `json:"cardStacks"`
	Counters   []CounterInitArgs   `json:"counters"`
}

// RoomSummary is what the room list and the redis index expose.
type RoomSummary struct {
	RoomID      string   `json:"roomID"`
	HostID      string   `json:"hostID"`
	Players     []string `json:"players"`
	PlayerCount int      `json:"playerCount"`
	Cards       int      `json:"cards"`
	CardStacks  int      `json:"cardStacks"`
	Counters    int      `json:"counters"`
}

type GetRoomList struct {
	Rooms []RoomSummary `json:"rooms"`
}

// LobbyRoomList is the redis-backed room listing.
type LobbyRoomList struct {
	Rooms []RoomSummary `json:"rooms"`
	Count int           `json:"count"`
}
