package ws

import (
	"net/http"
	"sync"
	"time"

	"bluff-card/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub tracks websocket connections per room and per player and implements
// the registry's Broadcaster. Delivery failures drop the connection and are
// logged, never surfaced to the game core.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]map[*websocket.Conn]struct{}
	byPlayer map[string]map[*websocket.Conn]struct{}
	service  RoomService
}

func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string]map[*websocket.Conn]struct{}),
		byPlayer: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// SetService wires the registry in after construction (the registry needs
// the hub as its sink, so one side attaches late).
func (h *Hub) SetService(s RoomService) {
	h.service = s
}

// writeWait bounds how long one connection's write may hold the hub lock; a
// stalled client times out, gets dropped, and delivery moves on.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// command is an incoming socket message.
type command struct {
	Action string      `json:"action"`
	Cards  []game.Card `json:"cards,omitempty"`
	Count  int         `json:"count,omitempty"`
	Rank   int         `json:"rank,omitempty"`
	Ready  bool        `json:"ready,omitempty"`
	Target string      `json:"target,omitempty"`
}

// HandleWS upgrades the connection and pumps commands into the registry.
func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("room_id")
	playerID := c.Query("player_id")
	if roomID == "" || playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id and player_id required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws: upgrade failed")
		return
	}

	h.register(roomID, playerID, conn)
	defer h.unregister(roomID, playerID, conn)

	// Initial sync so a (re)connecting client can render immediately.
	if h.service != nil {
		if snap, err := h.service.Snapshot(roomID); err == nil {
			h.writeTo(conn, "room_state", snap)
		}
		if hand, err := h.service.Hand(roomID, playerID); err == nil {
			h.writeTo(conn, "hand", gin.H{"cards": hand})
		}
	}

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		h.dispatch(roomID, playerID, conn, cmd)
	}
}

func (h *Hub) dispatch(roomID, playerID string, conn *websocket.Conn, cmd command) {
	if h.service == nil {
		return
	}
	var err error
	switch cmd.Action {
	case "play":
		_, err = h.service.Play(roomID, playerID, cmd.Cards, cmd.Count, cmd.Rank)
		if err == nil {
			if hand, herr := h.service.Hand(roomID, playerID); herr == nil {
				h.writeTo(conn, "hand", gin.H{"cards": hand})
			}
		}
	case "pass":
		_, err = h.service.Pass(roomID, playerID)
	case "challenge":
		_, err = h.service.Challenge(roomID, playerID, cmd.Target)
		if err == nil {
			if hand, herr := h.service.Hand(roomID, playerID); herr == nil {
				h.writeTo(conn, "hand", gin.H{"cards": hand})
			}
		}
	case "ready":
		_, err = h.service.SetReady(roomID, playerID, cmd.Ready)
	case "leave":
		err = h.service.LeaveRoom(roomID, playerID)
	case "hand":
		var hand []game.Card
		hand, err = h.service.Hand(roomID, playerID)
		if err == nil {
			h.writeTo(conn, "hand", gin.H{"cards": hand})
		}
	default:
		logrus.WithField("action", cmd.Action).Warn("ws: unknown action")
		return
	}
	if err != nil {
		h.writeTo(conn, "error", gin.H{"code": game.Kind(err), "message": err.Error()})
	}
}

// Broadcast sends an event to every connection in the room.
func (h *Hub) Broadcast(roomID string, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.rooms[roomID] {
		h.writeLocked(roomID, "", conn, event, data)
	}
}

// SendToPlayer sends an event to every connection of one player.
func (h *Hub) SendToPlayer(playerID string, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.byPlayer[playerID] {
		h.writeLocked("", playerID, conn, event, data)
	}
}

func (h *Hub) register(roomID, playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomID][conn] = struct{}{}
	if _, ok := h.byPlayer[playerID]; !ok {
		h.byPlayer[playerID] = make(map[*websocket.Conn]struct{})
	}
	h.byPlayer[playerID][conn] = struct{}{}
	logrus.WithFields(logrus.Fields{"room": roomID, "player": playerID}).Debug("ws: connected")
}

func (h *Hub) unregister(roomID, playerID string, conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.rooms[roomID], conn)
	delete(h.byPlayer[playerID], conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// writeTo serializes one message to one connection.
func (h *Hub) writeTo(conn *websocket.Conn, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writeLocked("", "", conn, event, data)
}

// writeLocked writes with the hub lock held; dead connections are dropped.
func (h *Hub) writeLocked(roomID, playerID string, conn *websocket.Conn, event string, data interface{}) {
	msg := map[string]interface{}{"event": event, "data": data}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		logrus.WithError(err).Warn("ws: write failed, dropping connection")
		conn.Close()
		if roomID != "" {
			delete(h.rooms[roomID], conn)
		}
		if playerID != "" {
			delete(h.byPlayer[playerID], conn)
		}
	}
}
