package game

import (
	"fmt"
	"sort"
)

// Table is the in-play state of one room: seating order, hands, the pile at
// stake and the claim/challenge bookkeeping. All mutation goes through the
// methods below; the room registry serializes callers per room.
type Table struct {
	Seats      []string            `json:"seats"` // seating order fixed at deal time
	Hands      map[string][]Card   `json:"-"`
	Pile       []Card              `json:"-"`
	LastClaim  *Claim              `json:"lastClaim,omitempty"`
	LastPlayed []Card              `json:"-"` // cards actually played under LastClaim
	Passed     map[string]bool     `json:"passed"`
	TurnIdx    int                 `json:"turnIdx"`
	Winners    []string            `json:"winners"`
	Finished   bool                `json:"finished"`
	DeckCount  int                 `json:"deckCount"`
}

// NewTable deals deckCount shuffled decks round-robin to the given players,
// in seating order, and gives the first seat the opening turn.
func NewTable(playerIDs []string, deckCount int) *Table {
	if deckCount < 1 {
		deckCount = 1
	}
	seats := append([]string(nil), playerIDs...)
	t := &Table{
		Seats:     seats,
		Hands:     Deal(GenerateShuffledDecks(deckCount), seats),
		Pile:      []Card{},
		Passed:    map[string]bool{},
		Winners:   []string{},
		DeckCount: deckCount,
	}
	return t
}

// CurrentPlayerID returns the id of the player whose turn it is, or "" when
// no seats remain.
func (t *Table) CurrentPlayerID() string {
	if len(t.Seats) == 0 {
		return ""
	}
	return t.Seats[t.TurnIdx%len(t.Seats)]
}

// HandOf returns the hand of the given player and whether they are seated.
func (t *Table) HandOf(playerID string) ([]Card, bool) {
	h, ok := t.Hands[playerID]
	return h, ok
}

// CardsTotal is the conservation sum: every card in a hand plus the pile.
func (t *Table) CardsTotal() int {
	n := len(t.Pile)
	for _, h := range t.Hands {
		n += len(h)
	}
	return n
}

// Play moves cards from the player's hand to the pile under the given
// declaration, then advances the turn. Emptying the hand finishes the game.
func (t *Table) Play(playerID string, cards []Card, decl Declaration) error {
	if t.Finished || t.CurrentPlayerID() != playerID {
		return ErrNotYourTurn
	}
	if err := ValidateDeclaration(decl, t.LastClaim, cards); err != nil {
		return err
	}
	hand, ok := t.Hands[playerID]
	if !ok {
		return fmt.Errorf("%w: no hand for seated player %s", ErrInternal, playerID)
	}
	// All-or-nothing: verify every card is held before touching the hand.
	rest, err := removeCards(hand, cards)
	if err != nil {
		return err
	}

	t.Hands[playerID] = rest
	t.Pile = append(t.Pile, cards...)
	t.LastClaim = &Claim{Count: decl.Count, Rank: decl.Rank, PlayerID: playerID}
	t.LastPlayed = append([]Card(nil), cards...)
	t.Passed = map[string]bool{}

	if len(rest) == 0 {
		t.finish(playerID)
		return nil
	}
	t.advance()
	return nil
}

// Pass records that the player declines to play and advances the turn. It
// reports whether the pass completed a round: every seated player except the
// last claimant has now passed.
func (t *Table) Pass(playerID string) (roundComplete bool, err error) {
	if t.Finished || t.CurrentPlayerID() != playerID {
		return false, ErrNotYourTurn
	}
	t.Passed[playerID] = true
	if t.LastClaim != nil {
		roundComplete = true
		for _, id := range t.Seats {
			if id != t.LastClaim.PlayerID && !t.Passed[id] {
				roundComplete = false
				break
			}
		}
	}
	t.advance()
	return roundComplete, nil
}

// ChallengeResult describes how a challenge resolved.
type ChallengeResult struct {
	ClaimWasFalse bool   `json:"claimWasFalse"`
	ClaimantID    string `json:"claimantId"`
	LoserID       string `json:"loserId"`
	PileSize      int    `json:"pileSize"`
	Revealed      []Card `json:"revealed"`
}

// Challenge reveals the last played cards against the last claim. The loser
// of the reveal takes the whole pile into their hand and plays next.
func (t *Table) Challenge(challengerID string) (ChallengeResult, error) {
	if t.Finished || t.CurrentPlayerID() != challengerID {
		return ChallengeResult{}, ErrNotYourTurn
	}
	if t.LastClaim == nil {
		return ChallengeResult{}, ErrNoCardsToChallenge
	}
	// The claimant cannot challenge their own claim; after a full-pass round
	// the turn is back with them and their claim still stands.
	if t.LastClaim.PlayerID == challengerID {
		return ChallengeResult{}, ErrNoCardsToChallenge
	}
	res := ChallengeResult{
		ClaimWasFalse: ClaimIsFalse(t.LastClaim.Rank, t.LastPlayed),
		ClaimantID:    t.LastClaim.PlayerID,
		PileSize:      len(t.Pile),
		Revealed:      append([]Card(nil), t.LastPlayed...),
	}
	if res.ClaimWasFalse {
		res.LoserID = t.LastClaim.PlayerID
	} else {
		res.LoserID = challengerID
	}
	if _, ok := t.Hands[res.LoserID]; !ok {
		return ChallengeResult{}, fmt.Errorf("%w: no hand for seated player %s", ErrInternal, res.LoserID)
	}
	t.awardPile(res.LoserID)
	return res, nil
}

// AwardRound hands the pile to the round winner after every other player has
// passed, and gives them the next turn. Optional behavior, see config.
func (t *Table) AwardRound(winnerID string) {
	if _, ok := t.Hands[winnerID]; !ok {
		return
	}
	t.awardPile(winnerID)
}

// awardPile moves the whole pile into the given hand, resets the round
// bookkeeping and makes that player current.
func (t *Table) awardPile(playerID string) {
	t.Hands[playerID] = append(t.Hands[playerID], t.Pile...)
	t.Pile = []Card{}
	t.LastClaim = nil
	t.LastPlayed = nil
	t.Passed = map[string]bool{}
	for i, id := range t.Seats {
		if id == playerID {
			t.TurnIdx = i
			break
		}
	}
}

// RemovePlayer splices the player out of the seating order, dumping their
// hand into the pile. Reports whether the player was seated. A departing
// claimant's claim dies with them: there is no hand left to award against.
func (t *Table) RemovePlayer(playerID string) bool {
	seat := -1
	for i, id := range t.Seats {
		if id == playerID {
			seat = i
			break
		}
	}
	if seat == -1 {
		return false
	}
	t.Pile = append(t.Pile, t.Hands[playerID]...)
	delete(t.Hands, playerID)
	delete(t.Passed, playerID)
	t.Seats = append(t.Seats[:seat], t.Seats[seat+1:]...)

	if t.LastClaim != nil && t.LastClaim.PlayerID == playerID {
		t.LastClaim = nil
		t.LastPlayed = nil
		t.Passed = map[string]bool{}
	}

	switch {
	case len(t.Seats) == 0:
		t.TurnIdx = 0
	case seat < t.TurnIdx:
		t.TurnIdx--
	case seat == t.TurnIdx:
		t.TurnIdx = t.TurnIdx % len(t.Seats)
		delete(t.Passed, t.CurrentPlayerID())
	}

	if !t.Finished && len(t.Seats) == 1 {
		t.finish(t.Seats[0])
	}
	return true
}

// advance moves the turn to the next seat in order. The new current player is
// always cleared from the passed set so the round can come back around.
func (t *Table) advance() {
	if len(t.Seats) == 0 {
		return
	}
	t.TurnIdx = (t.TurnIdx + 1) % len(t.Seats)
	delete(t.Passed, t.CurrentPlayerID())
}

// finish ends the game: winner first, then the remaining seats ranked by
// ascending hand size (seating order breaks ties).
func (t *Table) finish(winnerID string) {
	t.Finished = true
	t.Winners = append(t.Winners, winnerID)

	rest := make([]string, 0, len(t.Seats))
	for _, id := range t.Seats {
		if id != winnerID {
			rest = append(rest, id)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return len(t.Hands[rest[i]]) < len(t.Hands[rest[j]])
	})
	t.Winners = append(t.Winners, rest...)
}

// removeCards returns hand minus cards, or an error naming the first card not
// held. Duplicates are removed one occurrence at a time.
func removeCards(hand, cards []Card) ([]Card, error) {
	rest := append([]Card(nil), hand...)
	for _, c := range cards {
		found := -1
		for i, h := range rest {
			if h == c {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, fmt.Errorf("%w: card %v not in hand", ErrInvalidValue, c)
		}
		rest = append(rest[:found], rest[found+1:]...)
	}
	return rest, nil
}
