package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluff-card/internal/config"
	"bluff-card/internal/room"
	"bluff-card/internal/store"
)

func newWSTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	rm := room.NewManager(store.NewMemoryStore(), config.Default(), hub, nil)
	hub.SetService(rm)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, rm
}

func dial(t *testing.T, srv *httptest.Server, roomID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room_id=" + roomID + "&player_id=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandleWSInitialSync(t *testing.T) {
	srv, rm := newWSTestServer(t)
	snap, err := rm.CreateRoom("host", "Alice", 2, "")
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID, "host")

	// A connecting client gets the room state and its hand right away.
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "room_state", msg["event"])
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "hand", msg["event"])
}

func TestHandleWSBroadcast(t *testing.T) {
	srv, rm := newWSTestServer(t)
	snap, err := rm.CreateRoom("host", "Alice", 3, "")
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID, "host")
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg)) // room_state
	require.NoError(t, conn.ReadJSON(&msg)) // hand

	_, err = rm.JoinRoom(snap.ID, "p2", "Bob")
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "player_joined", msg["event"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, "p2", data["playerId"])
}

func TestHandleWSCommandErrors(t *testing.T) {
	srv, rm := newWSTestServer(t)
	snap, err := rm.CreateRoom("host", "Alice", 2, "")
	require.NoError(t, err)

	conn := dial(t, srv, snap.ID, "host")
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg)) // room_state
	require.NoError(t, conn.ReadJSON(&msg)) // hand

	// Passing before the game starts is a rule violation, reported on the
	// same socket with the stable code.
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "pass"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg["event"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, "NOT_YOUR_TURN", data["code"])
}

func TestBroadcastSurvivesDeadPeer(t *testing.T) {
	srv, rm := newWSTestServer(t)
	snap, err := rm.CreateRoom("host", "Alice", 3, "")
	require.NoError(t, err)
	_, err = rm.JoinRoom(snap.ID, "p2", "Bob")
	require.NoError(t, err)

	dead := dial(t, srv, snap.ID, "host")
	alive := dial(t, srv, snap.ID, "p2")

	var msg map[string]interface{}
	require.NoError(t, alive.ReadJSON(&msg)) // room_state
	require.NoError(t, alive.ReadJSON(&msg)) // hand

	// One peer vanishing must not stop delivery to the rest of the room.
	require.NoError(t, dead.Close())
	_, err = rm.JoinRoom(snap.ID, "p3", "Carol")
	require.NoError(t, err)

	require.NoError(t, alive.ReadJSON(&msg))
	assert.Equal(t, "player_joined", msg["event"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, "p3", data["playerId"])
}

func TestHandleWSRequiresIdentity(t *testing.T) {
	srv, _ := newWSTestServer(t)
	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
