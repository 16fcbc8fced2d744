package router

import (
	"net/http"

	"go-tabletop/controller"
	"go-tabletop/ws"

	"github.com/gin-gonic/gin"
)

// InitRouter registers every route. lobby is nil when the redis index is off.
func InitRouter(r *gin.Engine, rooms *controller.RoomController, lobby *controller.LobbyController, wsServer *ws.Server) {
	api := r.Group("/room")
	{
		api.GET("/list", rooms.GetRoomList)
		api.GET("/:roomID", rooms.GetRoomInfo)
	}

	if lobby != nil {
		l := r.Group("/lobby")
		{
			l.GET("/rooms", lobby.GetRooms)
			l.GET("/rooms/:roomID", lobby.GetRoom)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// WebSocket
	r.GET("/ws", wsServer.HandleWebSocket)
}
