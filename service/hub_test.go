package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-tabletop/dto"

	"go.uber.org/zap/zaptest"
)

// lockedTransport lets the test goroutine read what the hub goroutine wrote.
type lockedTransport struct {
	mu sync.Mutex
	*fakeTransport
}

func (l *lockedTransport) Join(p, r string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fakeTransport.Join(p, r)
}

func (l *lockedTransport) Leave(p, r string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fakeTransport.Leave(p, r)
}

func (l *lockedTransport) Emit(r string, evt dto.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fakeTransport.Emit(r, evt)
}

func (l *lockedTransport) Send(p string, evt dto.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fakeTransport.Send(p, evt)
}

func (l *lockedTransport) DisconnectRoom(r string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fakeTransport.DisconnectRoom(r)
}

func startHub(t *testing.T) (*Hub, *lockedTransport) {
	t.Helper()
	tr := &lockedTransport{fakeTransport: newFakeTransport()}
	logger := zaptest.NewLogger(t)
	hub := NewHub(NewHandler(tr, nil, logger), 16, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, tr
}

func TestHubAppliesIntentsInOrder(t *testing.T) {
	hub, tr := startHub(t)
	ctx := context.Background()

	intents := []dto.Intent{
		intent("A", dto.EventJoin, "R1"),
		intent("A", dto.EventCardCreated, cardArgs("c1", "Forest")),
	}
	for i := 0; i < 50; i++ {
		intents = append(intents, intent("A", dto.EventCardMoved, "c1", float64(i), float64(-i)))
	}
	for _, in := range intents {
		if err := hub.Submit(ctx, in); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	state, err := hub.RoomState(ctx, "R1")
	if err != nil {
		t.Fatalf("RoomState: %v", err)
	}
	if len(state.Cards) != 1 || state.Cards[0].X != 49 || state.Cards[0].Y != -49 {
		t.Fatalf("cards = %+v, want c1 at (49, -49)", state.Cards)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if n := len(tr.named(dto.EventCardMoved)); n != 50 {
		t.Fatalf("card-moved = %d, want 50", n)
	}
}

func TestHubConcurrentSubmitters(t *testing.T) {
	hub, _ := startHub(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, p := range []string{"A", "B", "C", "D"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = hub.Submit(ctx, intent(p, dto.EventJoin, "R1"))
				_ = hub.Submit(ctx, intent(p, dto.EventCounterCreated, counterArgs(p, float64(i))))
				_ = hub.Submit(ctx, intent(p, dto.EventCounterValsChanged, p, []any{float64(i)}))
			}
		}(p)
	}
	wg.Wait()

	rooms, err := hub.RoomList(ctx)
	if err != nil {
		t.Fatalf("RoomList: %v", err)
	}
	if len(rooms) != 1 || rooms[0].PlayerCount != 4 || rooms[0].Counters != 4 {
		t.Fatalf("rooms = %+v", rooms)
	}
	state, err := hub.RoomState(ctx, "R1")
	if err != nil {
		t.Fatalf("RoomState: %v", err)
	}
	for _, c := range state.Counters {
		if len(c.Vals) != 1 || c.Vals[0] != 24 {
			t.Fatalf("counter %s vals = %v, want [24]", c.ID, c.Vals)
		}
	}
}

func TestHubDisconnectWaitsForLeave(t *testing.T) {
	hub, tr := startHub(t)
	ctx := context.Background()

	_ = hub.Submit(ctx, intent("A", dto.EventJoin, "R1"))
	_ = hub.Submit(ctx, intent("B", dto.EventJoin, "R1"))
	if err := hub.Disconnect(ctx, "A"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	state, err := hub.RoomState(ctx, "R1")
	if err != nil {
		t.Fatalf("RoomState: %v", err)
	}
	if state.HostID != "B" || len(state.Players) != 1 {
		t.Fatalf("state = %+v", state)
	}
	tr.mu.Lock()
	left := len(tr.named(dto.EventPlayerLeft))
	tr.mu.Unlock()
	if left != 1 {
		t.Fatalf("player-left = %d, want 1", left)
	}

	if err := hub.Disconnect(ctx, "B"); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if _, err := hub.RoomState(ctx, "R1"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("RoomState after last leave err = %v, want ErrRoomNotFound", err)
	}
}

func TestHubSurvivesPanickingJob(t *testing.T) {
	hub, _ := startHub(t)
	ctx := context.Background()

	if err := hub.Do(ctx, func(*Handler) { panic("boom") }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if _, err := hub.RoomList(ctx); err != nil {
		t.Fatalf("hub unusable after panic: %v", err)
	}
}

func TestHubStopped(t *testing.T) {
	logger := zaptest.NewLogger(t)
	hub := NewHub(NewHandler(newFakeTransport(), nil, logger), 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := hub.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v", err)
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	if err := hub.Do(waitCtx, func(*Handler) {}); !errors.Is(err, ErrHubStopped) {
		t.Fatalf("Do err = %v, want ErrHubStopped", err)
	}
}
