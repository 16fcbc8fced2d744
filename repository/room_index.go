package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"

	"go-tabletop/dto"

	"github.com/go-redis/redis/v8"
	"github.com/mitchellh/mapstructure"
)

// RoomIndex mirrors room summaries into redis for tools outside this process.
// It is never read back to restore room state.
type RoomIndex struct {
	rdb    *redis.Client
	prefix string
}

func NewRoomIndex(rdb *redis.Client, prefix string) *RoomIndex {
	return &RoomIndex{rdb: rdb, prefix: prefix}
}

func (x *RoomIndex) roomsKey() string {
	return x.prefix + "rooms"
}

func (x *RoomIndex) infoKey(roomID string) string {
	return fmt.Sprintf("%sroom:%s:info", x.prefix, roomID)
}

// roomInfo is the hash layout of one room entry.
type roomInfo struct {
	RoomID      string `json:"roomID"`
	HostID      string `json:"hostID"`
	Players     string `json:"players"`
	PlayerCount int    `json:"playerCount"`
	Cards       int    `json:"cards"`
	CardStacks  int    `json:"cardStacks"`
	Counters    int    `json:"counters"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// Upsert writes the summary of one room.
func (x *RoomIndex) Upsert(ctx context.Context, summary dto.RoomSummary) error {
	players, err := json.Marshal(summary.Players)
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}

	pipe := x.rdb.TxPipeline()
	pipe.HSet(ctx, x.infoKey(summary.RoomID), map[string]interface{}{
		"roomID":      summary.RoomID,
		"hostID":      summary.HostID,
		"players":     string(players),
		"playerCount": summary.PlayerCount,
		"cards":       summary.Cards,
		"cardStacks":  summary.CardStacks,
		"counters":    summary.Counters,
		"updatedAt":   time.Now().UnixMilli(),
	})
	pipe.SAdd(ctx, x.roomsKey(), summary.RoomID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index room %s: %w", summary.RoomID, err)
	}
	return nil
}

// Remove deletes a closed room.
func (x *RoomIndex) Remove(ctx context.Context, roomID string) error {
	pipe := x.rdb.TxPipeline()
	pipe.Del(ctx, x.infoKey(roomID))
	pipe.SRem(ctx, x.roomsKey(), roomID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("unindex room %s: %w", roomID, err)
	}
	return nil
}

// Get reads one room entry. ok is false when the room is not indexed.
func (x *RoomIndex) Get(ctx context.Context, roomID string) (dto.RoomSummary, bool, error) {
	data, err := x.rdb.HGetAll(ctx, x.infoKey(roomID)).Result()
	if err != nil {
		return dto.RoomSummary{}, false, fmt.Errorf("read room %s: %w", roomID, err)
	}
	if len(data) == 0 {
		return dto.RoomSummary{}, false, nil
	}

	var info roomInfo
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     &info,
		TagName:    "json",
	})
	if err != nil {
		return dto.RoomSummary{}, false, err
	}
	if err := decoder.Decode(data); err != nil {
		return dto.RoomSummary{}, false, fmt.Errorf("decode room %s: %w", roomID, err)
	}

	summary := dto.RoomSummary{
		RoomID:      info.RoomID,
		HostID:      info.HostID,
		PlayerCount: info.PlayerCount,
		Cards:       info.Cards,
		CardStacks:  info.CardStacks,
		Counters:    info.Counters,
	}
	if info.Players != "" {
		if err := json.Unmarshal([]byte(info.Players), &summary.Players); err != nil {
			return dto.RoomSummary{}, false, fmt.Errorf("decode players of %s: %w", roomID, err)
		}
	}
	return summary, true, nil
}

// List returns every indexed room sorted by ID.
func (x *RoomIndex) List(ctx context.Context) ([]dto.RoomSummary, error) {
	ids, err := x.rdb.SMembers(ctx, x.roomsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	slices.Sort(ids)

	summaries := make([]dto.RoomSummary, 0, len(ids))
	for _, id := range ids {
		summary, ok, err := x.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries, nil
}

// Count is the number of indexed rooms.
func (x *RoomIndex) Count(ctx context.Context) (int, error) {
	n, err := x.rdb.SCard(ctx, x.roomsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return int(n), nil
}

// stringToIntHookFunc turns redis hash strings into ints.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && (to == reflect.Int || to == reflect.Int64) {
			return strconv.ParseInt(data.(string), 10, 64)
		}
		return data, nil
	}
}
