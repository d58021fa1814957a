package http

import (
	"bluff-card/internal/api/ws"
	"bluff-card/internal/config"
	"bluff-card/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, cfg *config.Config, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket for live room events and commands
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/rooms", CreateRoomHandler(rm))
	r.GET("/rooms/:roomId", GetRoomHandler(rm))
	r.POST("/rooms/:roomId/join", JoinRoomHandler(rm))
	r.POST("/rooms/:roomId/leave", LeaveRoomHandler(rm))
	r.POST("/rooms/:roomId/ready", SetReadyHandler(rm))
	r.POST("/rooms/:roomId/robots", AddRobotsHandler(rm))
	r.DELETE("/rooms/:roomId/robots", RemoveRobotsHandler(rm))

	// --- GAME ENDPOINTS ---
	r.POST("/rooms/:roomId/start", StartGameHandler(rm))
	r.POST("/rooms/:roomId/play", PlayHandler(rm))
	r.POST("/rooms/:roomId/pass", PassHandler(rm))
	r.POST("/rooms/:roomId/challenge", ChallengeHandler(rm))
	r.GET("/rooms/:roomId/hand", GetHandHandler(rm))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config/robot", GetRobotWeightsHandler(cfg))
	r.PUT("/config/robot", UpdateRobotWeightsHandler(cfg))

	return r
}
