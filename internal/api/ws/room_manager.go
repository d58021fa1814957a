package ws

import (
	"bluff-card/internal/game"
	"bluff-card/internal/room"
)

// RoomService is the slice of the registry the hub drives from socket
// commands.
type RoomService interface {
	Snapshot(roomID string) (room.Snapshot, error)
	Hand(roomID, playerID string) ([]game.Card, error)
	SetReady(roomID, playerID string, ready bool) (room.Snapshot, error)
	LeaveRoom(roomID, playerID string) error
	Play(roomID, playerID string, cards []game.Card, declaredCount, declaredRank int) (room.Snapshot, error)
	Pass(roomID, playerID string) (room.Snapshot, error)
	Challenge(roomID, challengerID, targetID string) (room.Snapshot, error)
}
