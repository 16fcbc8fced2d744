package repository

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go-tabletop/config"
	"go-tabletop/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func newTestIndex(t *testing.T) (*RoomIndex, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRoomIndex(rdb, "test:"), mr
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewRedis(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestRoomIndexUpsertGetRemove(t *testing.T) {
	index, mr := newTestIndex(t)
	ctx := context.Background()

	summary := dto.RoomSummary{
		RoomID:      "R1",
		HostID:      "A",
		Players:     []string{"A", "B"},
		PlayerCount: 2,
		Cards:       3,
		CardStacks:  1,
		Counters:    2,
	}
	if err := index.Upsert(ctx, summary); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got := mr.HGet("test:room:R1:info", "hostID"); got != "A" {
		t.Fatalf("hostID field = %q", got)
	}
	if ok, _ := mr.SIsMember("test:rooms", "R1"); !ok {
		t.Fatal("R1 missing from room set")
	}

	got, ok, err := index.Get(ctx, "R1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, summary) {
		t.Fatalf("Get = %+v, want %+v", got, summary)
	}

	summary.HostID = "B"
	summary.Players = []string{"B"}
	summary.PlayerCount = 1
	if err := index.Upsert(ctx, summary); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, _, _ = index.Get(ctx, "R1")
	if got.HostID != "B" || got.PlayerCount != 1 {
		t.Fatalf("after update Get = %+v", got)
	}

	if err := index.Remove(ctx, "R1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, err := index.Get(ctx, "R1"); ok || err != nil {
		t.Fatalf("Get after Remove: ok=%v err=%v", ok, err)
	}
	if n, _ := index.Count(ctx); n != 0 {
		t.Fatalf("Count = %d", n)
	}
}

func TestRoomIndexList(t *testing.T) {
	index, _ := newTestIndex(t)
	ctx := context.Background()
	for _, id := range []string{"R3", "R1", "R2"} {
		if err := index.Upsert(ctx, dto.RoomSummary{RoomID: id, HostID: "h", Players: []string{"h"}, PlayerCount: 1}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	rooms, err := index.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, r := range rooms {
		ids = append(ids, r.RoomID)
	}
	if !reflect.DeepEqual(ids, []string{"R1", "R2", "R3"}) {
		t.Fatalf("List ids = %v", ids)
	}
}

func TestIndexWriterAppliesUpdates(t *testing.T) {
	index, _ := newTestIndex(t)
	writer := NewIndexWriter(index, 8, zap.NewNop())

	writer.Publish(dto.RoomSummary{RoomID: "R1", HostID: "A", Players: []string{"A"}, PlayerCount: 1})
	writer.Publish(dto.RoomSummary{RoomID: "R2", HostID: "B", Players: []string{"B"}, PlayerCount: 1})
	writer.Drop("R1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		writer.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		rooms, err := index.List(context.Background())
		if err == nil && len(rooms) == 1 && rooms[0].RoomID == "R2" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("index never converged: rooms=%+v err=%v", rooms, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIndexWriterDropsWhenFull(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	writer := NewIndexWriter(NewRoomIndex(rdb, ""), 1, zap.NewNop())

	writer.Publish(dto.RoomSummary{RoomID: "R1"})
	writer.Publish(dto.RoomSummary{RoomID: "R2"})
	writer.Drop("R3")

	if n := len(writer.updates); n != 1 {
		t.Fatalf("queued updates = %d, want 1", n)
	}
}
