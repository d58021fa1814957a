package http

import "bluff-card/internal/game"

// CreateRoomRequest represents the payload for /rooms.
type CreateRoomRequest struct {
	HostID     string `json:"hostId"`
	HostName   string `json:"hostName"`
	MaxPlayers int    `json:"maxPlayers"`
	RoomName   string `json:"roomName"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// ReadyRequest toggles a player's readiness.
type ReadyRequest struct {
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

// AddRobotsRequest seats robots in a waiting room.
type AddRobotsRequest struct {
	RequesterID string `json:"requesterId"`
	Count       int    `json:"count"`
	Difficulty  string `json:"difficulty"` // EASY, MEDIUM or HARD
}

// StartGameRequest begins play.
type StartGameRequest struct {
	RequesterID string `json:"requesterId"`
	DeckCount   int    `json:"deckCount"`
}

// PlayRequest represents a declared play.
type PlayRequest struct {
	PlayerID string      `json:"playerId"`
	Cards    []game.Card `json:"cards"`
	Count    int         `json:"count"`
	Rank     int         `json:"rank"`
}

// PassRequest represents a pass.
type PassRequest struct {
	PlayerID string `json:"playerId"`
}

// ChallengeRequest challenges the standing claim.
type ChallengeRequest struct {
	ChallengerID string `json:"challengerId"`
	TargetID     string `json:"targetId"`
}
