package controller

import (
	"context"
	"net/http"

	"go-tabletop/dto"

	"github.com/gin-gonic/gin"
)

// RoomIndexReader reads the shared room index.
type RoomIndexReader interface {
	List(ctx context.Context) ([]dto.RoomSummary, error)
	Get(ctx context.Context, roomID string) (dto.RoomSummary, bool, error)
	Count(ctx context.Context) (int, error)
}

// LobbyController serves room listings from the shared index rather than
// from this process's hub.
type LobbyController struct {
	index RoomIndexReader
}

func NewLobbyController(index RoomIndexReader) *LobbyController {
	return &LobbyController{index: index}
}

func (lc *LobbyController) GetRooms(c *gin.Context) {
	ctx := c.Request.Context()
	rooms, err := lc.index.List(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failed to read room index"})
		return
	}
	count, err := lc.index.Count(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failed to read room index"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data": dto.LobbyRoomList{
			Rooms: rooms,
			Count: count,
		},
	})
}

func (lc *LobbyController) GetRoom(c *gin.Context) {
	summary, ok, err := lc.index.Get(c.Request.Context(), c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failed to read room index"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data":        summary,
	})
}
