package service

// Directory maps each connected player to the one room they occupy.
type Directory struct {
	players map[string]string
}

func NewDirectory() *Directory {
	return &Directory{players: make(map[string]string)}
}

func (d *Directory) Lookup(playerID string) (string, bool) {
	roomID, ok := d.players[playerID]
	return roomID, ok
}

func (d *Directory) Assign(playerID, roomID string) {
	d.players[playerID] = roomID
}

func (d *Directory) Remove(playerID string) {
	delete(d.players, playerID)
}

func (d *Directory) Len() int {
	return len(d.players)
}
