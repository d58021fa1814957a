package room

import (
	"context"
	"fmt"
	"time"

	"bluff-card/internal/config"
	"bluff-card/internal/game"
	"bluff-card/internal/history"
	"bluff-card/internal/robot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is the registry's view of room storage.
type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	Rooms() []*Room
}

// robotTurnCap bounds the robot loop after one human action. Challenges can
// bounce the turn between robots, so a pathological room could otherwise
// spin; the cap only trips on runs that long.
const robotTurnCap = 256

// Manager is the room registry: the authoritative owner of every room and
// the single entry point for mutating one. Each operation locks exactly one
// room, so rooms progress independently while any one room is serialized.
type Manager struct {
	store    Store
	cfg      *config.Config
	sink     Broadcaster
	history  *history.Recorder
	strategy func(robot.Difficulty) robot.Strategy
}

func NewManager(s Store, cfg *config.Config, sink Broadcaster, hist *history.Recorder) *Manager {
	return &Manager{
		store:   s,
		cfg:     cfg,
		sink:    sink,
		history: hist,
		strategy: func(tier robot.Difficulty) robot.Strategy {
			return robot.New(tier, cfg.GetRobot())
		},
	}
}

// CreateRoom opens a new WAITING room with the host seated.
func (m *Manager) CreateRoom(hostID, hostName string, maxPlayers int, roomName string) (Snapshot, error) {
	if maxPlayers < 2 {
		return Snapshot{}, fmt.Errorf("%w: maxPlayers must be at least 2", game.ErrInvalidValue)
	}
	if hostID == "" {
		hostID = uuid.NewString()
	}
	r := &Room{
		ID:         uuid.NewString(),
		Name:       roomName,
		HostID:     hostID,
		MaxPlayers: maxPlayers,
		Status:     StatusWaiting,
		Players:    []Player{{ID: hostID, Name: hostName}},
		Ready:      map[string]bool{},
		CreatedAt:  time.Now(),
	}
	m.store.SaveRoom(r)
	m.record(r.ID, hostID, "room_created", map[string]interface{}{"maxPlayers": maxPlayers})
	logrus.WithFields(logrus.Fields{"room": r.ID, "host": hostID}).Info("room created")

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(), nil
}

// withRoom runs fn with the room's lock held and returns the post-mutation
// snapshot. This is the per-room linearization point for every operation.
func (m *Manager) withRoom(roomID string, fn func(r *Room) error) (Snapshot, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return Snapshot{}, game.ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return Snapshot{}, game.ErrRoomNotFound
	}
	if err := fn(r); err != nil {
		return Snapshot{}, err
	}
	return r.snapshot(), nil
}

// JoinRoom seats a player in a WAITING room. Joining a room you are already
// in is a no-op success.
func (m *Manager) JoinRoom(roomID, playerID, name string) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		if r.player(playerID) != nil {
			return nil
		}
		if r.Status != StatusWaiting {
			return game.ErrGameAlreadyStarted
		}
		if len(r.Players) >= r.MaxPlayers {
			return game.ErrRoomFull
		}
		r.Players = append(r.Players, Player{ID: playerID, Name: name})
		m.broadcast(r, "player_joined", map[string]interface{}{"playerId": playerID, "name": name})
		m.record(r.ID, playerID, "player_joined", nil)
		return nil
	})
}

// LeaveRoom removes a player. While playing, their hand is dumped into the
// pile and the turn advances past them. The host role moves to the first
// remaining human (or first remaining player); a room with no humans left is
// dissolved.
func (m *Manager) LeaveRoom(roomID, playerID string) error {
	_, err := m.withRoom(roomID, func(r *Room) error {
		idx := -1
		for i, p := range r.Players {
			if p.ID == playerID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return game.ErrPlayerNotInRoom
		}
		r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
		delete(r.Ready, playerID)

		if r.Table != nil {
			wasFinished := r.Table.Finished
			r.Table.RemovePlayer(playerID)
			if r.Table.Finished && !wasFinished {
				m.finishGame(r)
			}
		}

		m.broadcast(r, "player_left", map[string]interface{}{"playerId": playerID})
		m.record(r.ID, playerID, "player_left", nil)

		if r.humanCount() == 0 {
			m.dissolve(r)
			return nil
		}

		if r.HostID == playerID {
			next := r.Players[0].ID
			for _, p := range r.Players {
				if !p.IsRobot {
					next = p.ID
					break
				}
			}
			r.HostID = next
			m.broadcast(r, "host_changed", map[string]interface{}{"hostId": next})
		}

		m.runRobotTurns(r)
		return nil
	})
	return err
}

// SetReady toggles a player's readiness while the room is waiting.
func (m *Manager) SetReady(roomID, playerID string, ready bool) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		if r.Status != StatusWaiting {
			return game.ErrGameAlreadyStarted
		}
		if r.player(playerID) == nil {
			return game.ErrPlayerNotInRoom
		}
		if ready {
			r.Ready[playerID] = true
		} else {
			delete(r.Ready, playerID)
		}
		m.broadcast(r, "player_ready", map[string]interface{}{"playerId": playerID, "ready": ready})
		return nil
	})
}

// AddRobots seats count robots, auto-ready, and pins the room's difficulty.
func (m *Manager) AddRobots(roomID, requesterID string, count int, difficulty robot.Difficulty) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		if r.Status != StatusWaiting {
			return game.ErrGameAlreadyStarted
		}
		if r.HostID != requesterID {
			return game.ErrNotHost
		}
		if count < 1 {
			return fmt.Errorf("%w: robot count must be positive", game.ErrInvalidValue)
		}
		if len(r.Players)+count > r.MaxPlayers {
			return game.ErrRoomFull
		}
		r.RobotDifficulty = difficulty
		added := make([]string, 0, count)
		for i := 0; i < count; i++ {
			id := "robot-" + uuid.NewString()
			r.Players = append(r.Players, Player{
				ID:      id,
				Name:    fmt.Sprintf("Robot %d", len(r.Players)),
				IsRobot: true,
			})
			r.Ready[id] = true
			added = append(added, id)
		}
		m.broadcast(r, "robots_added", map[string]interface{}{"robotIds": added, "difficulty": difficulty})
		m.record(r.ID, requesterID, "robots_added", map[string]interface{}{"count": count, "difficulty": string(difficulty)})
		return nil
	})
}

// RemoveRobots unseats every robot while the room is waiting.
func (m *Manager) RemoveRobots(roomID, requesterID string) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		if r.Status != StatusWaiting {
			return game.ErrGameAlreadyStarted
		}
		if r.HostID != requesterID {
			return game.ErrNotHost
		}
		kept := r.Players[:0]
		for _, p := range r.Players {
			if p.IsRobot {
				delete(r.Ready, p.ID)
				continue
			}
			kept = append(kept, p)
		}
		r.Players = kept
		m.broadcast(r, "robots_removed", nil)
		return nil
	})
}

// StartGame deals deckCount decks and moves the room to PLAYING. Only the
// host may start, with at least two seated players, all ready.
func (m *Manager) StartGame(roomID, requesterID string, deckCount int) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		if r.Status != StatusWaiting {
			return game.ErrGameAlreadyStarted
		}
		if r.HostID != requesterID {
			return game.ErrNotHost
		}
		if len(r.Players) < 2 {
			return game.ErrNotEnoughPlayers
		}
		if !r.allReady() {
			return fmt.Errorf("%w: not all players are ready", game.ErrInvalidValue)
		}
		ids := make([]string, len(r.Players))
		for i, p := range r.Players {
			ids[i] = p.ID
		}
		r.Table = game.NewTable(ids, deckCount)
		r.Status = StatusPlaying

		m.broadcast(r, "game_started", map[string]interface{}{
			"seats":     ids,
			"deckCount": r.Table.DeckCount,
			"firstTurn": r.Table.CurrentPlayerID(),
		})
		for _, p := range r.Players {
			if p.IsRobot {
				continue
			}
			if hand, ok := r.Table.HandOf(p.ID); ok {
				m.sink.SendToPlayer(p.ID, "hand", map[string]interface{}{"cards": hand})
			}
		}
		m.record(r.ID, requesterID, "game_started", map[string]interface{}{"deckCount": r.Table.DeckCount})
		logrus.WithFields(logrus.Fields{"room": r.ID, "players": len(ids)}).Info("game started")

		m.runRobotTurns(r)
		return nil
	})
}

// Play applies a declared play for the current player.
func (m *Manager) Play(roomID, playerID string, cards []game.Card, declaredCount, declaredRank int) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		t, err := m.playingTable(r, playerID)
		if err != nil {
			return err
		}
		decl := game.Declaration{Count: declaredCount, Rank: declaredRank}
		if err := t.Play(playerID, cards, decl); err != nil {
			return err
		}
		m.afterPlay(r, playerID, decl)
		m.runRobotTurns(r)
		return nil
	})
}

// Pass records a pass for the current player.
func (m *Manager) Pass(roomID, playerID string) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		t, err := m.playingTable(r, playerID)
		if err != nil {
			return err
		}
		roundComplete, err := t.Pass(playerID)
		if err != nil {
			return err
		}
		m.afterPass(r, playerID, roundComplete)
		m.runRobotTurns(r)
		return nil
	})
}

// Challenge resolves the standing claim for the current player.
func (m *Manager) Challenge(roomID, challengerID, targetID string) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error {
		t, err := m.playingTable(r, challengerID)
		if err != nil {
			return err
		}
		res, err := t.Challenge(challengerID)
		if err != nil {
			return err
		}
		m.afterChallenge(r, challengerID, res)
		m.runRobotTurns(r)
		return nil
	})
}

// RemoveRoom deletes a room. Removing an unknown room is a no-op.
func (m *Manager) RemoveRoom(roomID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.gone {
		m.dissolve(r)
	}
}

// Snapshot returns the current immutable view of a room.
func (m *Manager) Snapshot(roomID string) (Snapshot, error) {
	return m.withRoom(roomID, func(r *Room) error { return nil })
}

// Hand returns a copy of one player's current hand.
func (m *Manager) Hand(roomID, playerID string) ([]game.Card, error) {
	var hand []game.Card
	_, err := m.withRoom(roomID, func(r *Room) error {
		if r.player(playerID) == nil {
			return game.ErrPlayerNotInRoom
		}
		if r.Table == nil {
			hand = []game.Card{}
			return nil
		}
		h, ok := r.Table.HandOf(playerID)
		if !ok {
			return fmt.Errorf("%w: no hand for seated player %s", game.ErrInternal, playerID)
		}
		hand = append([]game.Card(nil), h...)
		return nil
	})
	return hand, err
}

// StartSweeper runs the janitor until ctx is cancelled: finished rooms past
// their TTL and dissolved leftovers are removed. The sweep competes for the
// same per-room locks as client operations.
func (m *Manager) StartSweeper(ctx context.Context) {
	go func() {
		t := time.NewTicker(m.cfg.SweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.sweep()
			}
		}
	}()
}

func (m *Manager) sweep() {
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		expired := r.Status == StatusFinished && !r.FinishedAt.IsZero() &&
			time.Since(r.FinishedAt) > m.cfg.FinishedRoomTTL
		if (expired || r.humanCount() == 0) && !r.gone {
			m.dissolve(r)
			logrus.WithField("room", r.ID).Info("room swept")
		}
		r.mu.Unlock()
	}
}

// ---------------------------------------------------------------------------
// internals, all called with the room lock held
// ---------------------------------------------------------------------------

// playingTable checks the player may act on this room's table.
func (m *Manager) playingTable(r *Room, playerID string) (*game.Table, error) {
	if r.player(playerID) == nil {
		return nil, game.ErrPlayerNotInRoom
	}
	if r.Status != StatusPlaying || r.Table == nil {
		return nil, game.ErrNotYourTurn
	}
	return r.Table, nil
}

func (m *Manager) afterPlay(r *Room, playerID string, decl game.Declaration) {
	t := r.Table
	hand, _ := t.HandOf(playerID)
	m.broadcast(r, "play", map[string]interface{}{
		"playerId": playerID,
		"count":    decl.Count,
		"rank":     decl.Rank,
		"handSize": len(hand),
		"pileSize": len(t.Pile),
		"nextTurn": t.CurrentPlayerID(),
	})
	m.record(r.ID, playerID, "play", map[string]interface{}{"count": decl.Count, "rank": decl.Rank})
	if t.Finished {
		m.finishGame(r)
	}
}

func (m *Manager) afterPass(r *Room, playerID string, roundComplete bool) {
	t := r.Table
	m.broadcast(r, "pass", map[string]interface{}{
		"playerId": playerID,
		"nextTurn": t.CurrentPlayerID(),
	})
	m.record(r.ID, playerID, "pass", nil)
	if !roundComplete || t.LastClaim == nil {
		return
	}
	claimant := t.LastClaim.PlayerID
	if m.cfg.AwardPileOnRoundReset {
		pile := len(t.Pile)
		t.AwardRound(claimant)
		m.broadcast(r, "pile_awarded", map[string]interface{}{
			"playerId": claimant,
			"pileSize": pile,
			"nextTurn": t.CurrentPlayerID(),
		})
		m.record(r.ID, claimant, "pile_awarded", map[string]interface{}{"pileSize": pile})
		return
	}
	m.broadcast(r, "round_reset", map[string]interface{}{"claimantId": claimant})
}

func (m *Manager) afterChallenge(r *Room, challengerID string, res game.ChallengeResult) {
	m.broadcast(r, "challenge_resolved", map[string]interface{}{
		"challengerId":  challengerID,
		"claimantId":    res.ClaimantID,
		"claimWasFalse": res.ClaimWasFalse,
		"loserId":       res.LoserID,
		"pileSize":      res.PileSize,
		"revealed":      res.Revealed,
		"nextTurn":      r.Table.CurrentPlayerID(),
	})
	m.record(r.ID, challengerID, "challenge", map[string]interface{}{
		"claimWasFalse": res.ClaimWasFalse,
		"loserId":       res.LoserID,
	})
}

func (m *Manager) finishGame(r *Room) {
	r.Status = StatusFinished
	r.FinishedAt = time.Now()
	m.broadcast(r, "game_over", map[string]interface{}{"winners": r.Table.Winners})
	m.record(r.ID, "", "game_over", map[string]interface{}{"winners": r.Table.Winners})
	logrus.WithFields(logrus.Fields{"room": r.ID, "winners": r.Table.Winners}).Info("game over")
}

// dissolve removes the room from the registry and tells clients.
func (m *Manager) dissolve(r *Room) {
	r.gone = true
	m.store.DeleteRoom(r.ID)
	m.broadcast(r, "room_dissolved", nil)
	m.record(r.ID, "", "room_dissolved", nil)
	logrus.WithField("room", r.ID).Info("room dissolved")
}

// runRobotTurns plays out consecutive robot turns after a mutation, under
// the same room lock, until a human is up or the game ends.
func (m *Manager) runRobotTurns(r *Room) {
	if r.Status != StatusPlaying || r.Table == nil {
		return
	}
	strat := m.strategy(r.RobotDifficulty)
	t := r.Table
	for i := 0; i < robotTurnCap; i++ {
		if t.Finished || r.Status != StatusPlaying {
			return
		}
		cur := r.player(t.CurrentPlayerID())
		if cur == nil || !cur.IsRobot {
			return
		}
		hand, ok := t.HandOf(cur.ID)
		if !ok {
			logrus.WithFields(logrus.Fields{"room": r.ID, "robot": cur.ID}).Error("robot has no hand entry")
			return
		}

		if t.LastClaim != nil && t.LastClaim.PlayerID != cur.ID &&
			strat.DecideToChallenge(t.LastClaim, len(t.Pile), hand) {
			res, err := t.Challenge(cur.ID)
			if err != nil {
				logrus.WithError(err).WithField("room", r.ID).Error("robot challenge rejected")
				return
			}
			m.afterChallenge(r, cur.ID, res)
			continue
		}

		selected := strat.SelectCardsToPlay(t.LastClaim, hand)
		if selected == nil {
			roundComplete, err := t.Pass(cur.ID)
			if err != nil {
				logrus.WithError(err).WithField("room", r.ID).Error("robot pass rejected")
				return
			}
			m.afterPass(r, cur.ID, roundComplete)
			continue
		}

		decl := strat.GenerateClaim(selected, t.LastClaim)
		if err := t.Play(cur.ID, selected, decl); err != nil {
			// A rejected robot play means the strategy and rules disagree;
			// pass to keep the room moving.
			logrus.WithError(err).WithFields(logrus.Fields{"room": r.ID, "robot": cur.ID}).Error("robot play rejected")
			if roundComplete, perr := t.Pass(cur.ID); perr == nil {
				m.afterPass(r, cur.ID, roundComplete)
				continue
			}
			return
		}
		m.afterPlay(r, cur.ID, decl)
	}
	logrus.WithField("room", r.ID).Warn("robot turn cap reached")
}

func (m *Manager) broadcast(r *Room, event string, data map[string]interface{}) {
	if m.sink == nil {
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	m.sink.Broadcast(r.ID, event, data)
}

func (m *Manager) record(roomID, actorID, action string, payload map[string]interface{}) {
	if m.history != nil {
		m.history.Record(roomID, actorID, action, payload)
	}
}
