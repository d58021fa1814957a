package room

import (
	"sync"
	"time"

	"bluff-card/internal/game"
	"bluff-card/internal/robot"
)

// Status is the room lifecycle stage. READY is derived, not stored: a
// WAITING room reports READY while every seat is ready and the game can
// start, so the stored status never regresses.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusReady    Status = "READY"
	StatusPlaying  Status = "PLAYING"
	StatusFinished Status = "FINISHED"
)

// Player is one participant. Robots are ordinary players with the flag set;
// their decisions come from the room's strategy, not a subclass.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsRobot bool   `json:"isRobot"`
}

// Room is the aggregate for one game instance: lobby membership plus, while
// playing, the table. The mutex serializes every mutation on this room; the
// registry is the only code that takes it.
type Room struct {
	ID              string
	Name            string
	HostID          string
	MaxPlayers      int
	Status          Status
	Players         []Player // insertion order = seating order
	Ready           map[string]bool
	RobotDifficulty robot.Difficulty
	Table           *game.Table // nil until the game starts
	CreatedAt       time.Time
	FinishedAt      time.Time

	mu   sync.Mutex
	gone bool // removed from the store; late lockers must not resurrect it
}

func (r *Room) player(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

func (r *Room) humanCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.IsRobot {
			n++
		}
	}
	return n
}

func (r *Room) allReady() bool {
	for _, p := range r.Players {
		if !r.Ready[p.ID] {
			return false
		}
	}
	return true
}

// PlayerSnapshot is the public view of one seat.
type PlayerSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsRobot  bool   `json:"isRobot"`
	Ready    bool   `json:"ready"`
	HandSize int    `json:"handSize"`
	Passed   bool   `json:"passed"`
}

// Snapshot is an immutable copy of room state, safe to hand to transport.
// Hands are not included; players fetch their own hand separately.
type Snapshot struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	HostID          string           `json:"hostId"`
	MaxPlayers      int              `json:"maxPlayers"`
	Status          Status           `json:"status"`
	RobotDifficulty robot.Difficulty `json:"robotDifficulty,omitempty"`
	Players         []PlayerSnapshot `json:"players"`
	CurrentPlayerID string           `json:"currentPlayerId,omitempty"`
	PileSize        int              `json:"pileSize"`
	LastClaim       *game.Claim      `json:"lastClaim,omitempty"`
	Winners         []string         `json:"winners,omitempty"`
	DeckCount       int              `json:"deckCount,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// snapshot deep-copies the externally visible state. Caller holds the lock.
func (r *Room) snapshot() Snapshot {
	s := Snapshot{
		ID:              r.ID,
		Name:            r.Name,
		HostID:          r.HostID,
		MaxPlayers:      r.MaxPlayers,
		Status:          r.Status,
		RobotDifficulty: r.RobotDifficulty,
		Players:         make([]PlayerSnapshot, 0, len(r.Players)),
		CreatedAt:       r.CreatedAt,
	}
	if r.Status == StatusWaiting && len(r.Players) >= 2 && r.allReady() {
		s.Status = StatusReady
	}
	for _, p := range r.Players {
		ps := PlayerSnapshot{
			ID:      p.ID,
			Name:    p.Name,
			IsRobot: p.IsRobot,
			Ready:   r.Ready[p.ID],
		}
		if r.Table != nil {
			if h, ok := r.Table.HandOf(p.ID); ok {
				ps.HandSize = len(h)
			}
			ps.Passed = r.Table.Passed[p.ID]
		}
		s.Players = append(s.Players, ps)
	}
	if r.Table != nil {
		s.CurrentPlayerID = r.Table.CurrentPlayerID()
		s.PileSize = len(r.Table.Pile)
		s.DeckCount = r.Table.DeckCount
		s.Winners = append([]string(nil), r.Table.Winners...)
		if r.Table.LastClaim != nil {
			c := *r.Table.LastClaim
			s.LastClaim = &c
		}
	}
	return s
}
