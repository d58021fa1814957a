package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluff-card/internal/api/ws"
	"bluff-card/internal/config"
	"bluff-card/internal/room"
	"bluff-card/internal/store"
)

func newTestRouter() (*gin.Engine, *room.Manager) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	hub := ws.NewHub()
	rm := room.NewManager(store.NewMemoryStore(), cfg, hub, nil)
	hub.SetService(rm)
	return NewRouter(rm, cfg, hub), rm
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func createRoom(t *testing.T, r *gin.Engine, maxPlayers int) string {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/rooms", CreateRoomRequest{
		HostID: "host", HostName: "Alice", MaxPlayers: maxPlayers, RoomName: "t",
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomObj := out["room"].(map[string]interface{})
	return roomObj["id"].(string)
}

func TestCreateRoomEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w, out := doJSON(t, r, http.MethodPost, "/rooms", CreateRoomRequest{
		HostID: "host", HostName: "Alice", MaxPlayers: 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomObj := out["room"].(map[string]interface{})
	assert.Equal(t, "WAITING", roomObj["status"])
	assert.Equal(t, "host", roomObj["hostId"])

	// Below the two-player minimum.
	w, out = doJSON(t, r, http.MethodPost, "/rooms", CreateRoomRequest{
		HostID: "host", HostName: "Alice", MaxPlayers: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_VALUE", out["code"])
}

func TestJoinRoomEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	roomID := createRoom(t, r, 2)

	w, _ := doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/join", JoinRoomRequest{
		PlayerID: "p2", PlayerName: "Bob",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Room is at capacity now.
	w, out := doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/join", JoinRoomRequest{
		PlayerID: "p3", PlayerName: "Carol",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROOM_FULL", out["code"])

	// Missing playerId never reaches the registry.
	w, _ = doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/join", JoinRoomRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = doJSON(t, r, http.MethodPost, "/rooms/nope/join", JoinRoomRequest{PlayerID: "p9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ROOM_NOT_FOUND", out["code"])
}

func TestStartGameEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	roomID := createRoom(t, r, 3)

	w, out := doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/robots", AddRobotsRequest{
		RequesterID: "host", Count: 2, Difficulty: "HARD",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Only the host may start.
	w, out = doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/start", StartGameRequest{
		RequesterID: "p2",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "NOT_HOST", out["code"])

	// Host not ready yet.
	w, out = doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/start", StartGameRequest{
		RequesterID: "host",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/ready", ReadyRequest{
		PlayerID: "host", Ready: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, out = doJSON(t, r, http.MethodPost, "/rooms/"+roomID+"/start", StartGameRequest{
		RequesterID: "host",
	})
	require.Equal(t, http.StatusOK, w.Code)
	roomObj := out["room"].(map[string]interface{})
	assert.Equal(t, "PLAYING", roomObj["status"])
	assert.Equal(t, float64(1), roomObj["deckCount"], "deckCount defaults to one")
}

func TestGetHandEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	roomID := createRoom(t, r, 2)

	// Before the deal the hand is empty but the call succeeds.
	req := httptest.NewRequest(http.MethodGet, "/rooms/"+roomID+"/hand?playerId=host", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing playerId is rejected up front.
	req = httptest.NewRequest(http.MethodGet, "/rooms/"+roomID+"/hand", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRobotWeightsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/config/robot", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out, "weights")
	assert.Equal(t, false, out["awardPileOnRoundReset"])
}

func TestUpdateRobotWeightsEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	w2 := config.Default().Robot
	w2.ChallengeHard = 0.9
	resp, out := doJSON(t, r, http.MethodPut, "/config/robot", w2)
	require.Equal(t, http.StatusOK, resp.Code)

	weights := out["weights"].(map[string]interface{})
	assert.InDelta(t, 0.9, weights["ChallengeHard"], 1e-9)
}
