package controller

import (
	"errors"
	"net/http"

	"go-tabletop/dto"
	"go-tabletop/service"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	hub *service.Hub
}

func NewRoomController(hub *service.Hub) *RoomController {
	return &RoomController{hub: hub}
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	rooms, err := rc.hub.RoomList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")
	state, err := rc.hub.RoomState(c.Request.Context(), roomID)
	if errors.Is(err, service.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failed to read room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "ok",
		"status_code": http.StatusOK,
		"data":        state,
	})
}
