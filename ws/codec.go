package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-tabletop/dto"
)

var errNoEvent = errors.New("frame has no event name")

// decodeIntent parses one inbound text frame: {"event": "...", "args": [...]}.
func decodeIntent(playerID string, msg []byte) (dto.Intent, error) {
	var frame dto.Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		return dto.Intent{}, fmt.Errorf("decode frame: %w", err)
	}
	if frame.Event == "" {
		return dto.Intent{}, errNoEvent
	}
	return dto.Intent{PlayerID: playerID, Event: frame.Event, Args: frame.Args}, nil
}

func encodeEvent(evt dto.Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", evt.Name, err)
	}
	return data, nil
}
