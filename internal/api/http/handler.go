package http

import (
	"errors"
	"net/http"

	"bluff-card/internal/game"
	"bluff-card/internal/robot"
	"bluff-card/internal/room"

	"github.com/gin-gonic/gin"
)

// statusFor maps rule-violation kinds onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, game.ErrRoomFull), errors.Is(err, game.ErrGameAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, game.ErrInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"code": game.Kind(err), "error": err.Error()})
}

// @Summary Create new room
// @Description Create a new room with the host seated
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room info"
// @Success 200 {object} map[string]interface{}
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		snap, err := rm.CreateRoom(req.HostID, req.HostName, req.MaxPlayers, req.RoomName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Join a room
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body JoinRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		snap, err := rm.JoinRoom(c.Param("roomId"), req.PlayerID, req.PlayerName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Leave a room
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Param playerId query string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/leave [post]
func LeaveRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("playerId")
		if playerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		if err := rm.LeaveRoom(c.Param("roomId"), playerID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Toggle readiness
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body ReadyRequest true "Readiness"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/ready [post]
func SetReadyHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReadyRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		snap, err := rm.SetReady(c.Param("roomId"), req.PlayerID, req.Ready)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Add robots to a room
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body AddRobotsRequest true "Robot info"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/robots [post]
func AddRobotsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddRobotsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.Count <= 0 {
			req.Count = 1
		}
		snap, err := rm.AddRobots(c.Param("roomId"), req.RequesterID, req.Count, robot.ParseDifficulty(req.Difficulty))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Remove all robots from a room
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Param requesterId query string true "Requester ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/robots [delete]
func RemoveRobotsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.RemoveRobots(c.Param("roomId"), c.Query("requesterId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Start the game
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body StartGameRequest true "Start info"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/start [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartGameRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.DeckCount <= 0 {
			req.DeckCount = 1
		}
		snap, err := rm.StartGame(c.Param("roomId"), req.RequesterID, req.DeckCount)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Play cards under a declaration
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body PlayRequest true "Play data"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/play [post]
func PlayHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		snap, err := rm.Play(c.Param("roomId"), req.PlayerID, req.Cards, req.Count, req.Rank)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Pass the turn
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body PassRequest true "Pass data"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/pass [post]
func PassHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PassRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		snap, err := rm.Pass(c.Param("roomId"), req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Challenge the standing claim
// @Tags Game
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body ChallengeRequest true "Challenge data"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/challenge [post]
func ChallengeHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChallengeRequest
		if err := c.BindJSON(&req); err != nil || req.ChallengerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "challengerId required"})
			return
		}
		snap, err := rm.Challenge(c.Param("roomId"), req.ChallengerID, req.TargetID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Get room snapshot
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := rm.Snapshot(c.Param("roomId"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}

// @Summary Get a player's hand
// @Tags Game
// @Produce json
// @Param roomId path string true "Room ID"
// @Param playerId query string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{roomId}/hand [get]
func GetHandHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("playerId")
		if playerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
			return
		}
		hand, err := rm.Hand(c.Param("roomId"), playerID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cards": hand})
	}
}
