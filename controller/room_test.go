package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-tabletop/dto"
	"go-tabletop/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

type nopTransport struct{}

func (nopTransport) Join(string, string)    {}
func (nopTransport) Leave(string, string)   {}
func (nopTransport) Emit(string, dto.Event) {}
func (nopTransport) Send(string, dto.Event) {}
func (nopTransport) DisconnectRoom(string)  {}

func newTestRouter(t *testing.T) (*gin.Engine, *service.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	hub := service.NewHub(service.NewHandler(nopTransport{}, nil, logger), 16, logger)

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

	rc := NewRoomController(hub)
	r := gin.New()
	r.GET("/room/list", rc.GetRoomList)
	r.GET("/room/:roomID", rc.GetRoomInfo)
	return r, hub
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetRoomList(t *testing.T) {
	r, hub := newTestRouter(t)
	ctx := context.Background()
	for _, in := range []dto.Intent{
		{PlayerID: "A", Event: dto.EventJoin, Args: []any{"R2"}},
		{PlayerID: "B", Event: dto.EventJoin, Args: []any{"R1"}},
		{PlayerID: "C", Event: dto.EventJoin, Args: []any{"R1"}},
	} {
		if err := hub.Submit(ctx, in); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	w := get(r, "/room/list")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data dto.GetRoomList `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rooms := body.Data.Rooms
	if len(rooms) != 2 || rooms[0].RoomID != "R1" || rooms[0].PlayerCount != 2 || rooms[0].HostID != "B" {
		t.Fatalf("rooms = %+v", rooms)
	}
}

func TestGetRoomInfo(t *testing.T) {
	r, hub := newTestRouter(t)
	ctx := context.Background()
	_ = hub.Submit(ctx, dto.Intent{PlayerID: "A", Event: dto.EventJoin, Args: []any{"R1"}})
	_ = hub.Submit(ctx, dto.Intent{PlayerID: "A", Event: dto.EventCounterCreated, Args: []any{
		map[string]any{"ID": "k1", "vals": []any{float64(3)}},
	}})

	w := get(r, "/room/R1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data dto.RoomState `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.HostID != "A" || len(body.Data.Counters) != 1 || body.Data.Counters[0].Vals[0] != 3 {
		t.Fatalf("state = %+v", body.Data)
	}

	if w := get(r, "/room/missing"); w.Code != http.StatusNotFound {
		t.Fatalf("missing room status = %d", w.Code)
	}
}
