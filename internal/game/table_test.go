package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s Suit, r int) Card { return Card{Suit: s, Rank: r} }

// fixedTable builds a table with known hands instead of a shuffled deal.
func fixedTable(hands map[string][]Card, seats ...string) *Table {
	copied := make(map[string][]Card, len(hands))
	for id, h := range hands {
		copied[id] = append([]Card(nil), h...)
	}
	return &Table{
		Seats:     seats,
		Hands:     copied,
		Pile:      []Card{},
		Passed:    map[string]bool{},
		Winners:   []string{},
		DeckCount: 1,
	}
}

func TestNewTableDealsEverything(t *testing.T) {
	tb := NewTable([]string{"a", "b", "c"}, 1)
	assert.Equal(t, DeckSize, tb.CardsTotal())
	assert.Equal(t, "a", tb.CurrentPlayerID())
	assert.False(t, tb.Finished)
}

func TestPlayMovesCardsAndAdvances(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitHearts, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	played := []Card{card(SuitSpades, 5), card(SuitHearts, 5)}
	err := tb.Play("a", played, Declaration{Count: 2, Rank: 5})
	require.NoError(t, err)

	hand, _ := tb.HandOf("a")
	assert.Equal(t, []Card{card(SuitClubs, 9)}, hand)
	assert.Equal(t, played, tb.Pile)
	require.NotNil(t, tb.LastClaim)
	assert.Equal(t, Claim{Count: 2, Rank: 5, PlayerID: "a"}, *tb.LastClaim)
	assert.Equal(t, "b", tb.CurrentPlayerID())
	assert.Equal(t, 4, tb.CardsTotal())
}

func TestPlayRejectsCardNotHeld(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	err := tb.Play("a", []Card{card(SuitHearts, 5)}, Declaration{Count: 1, Rank: 5})
	require.ErrorIs(t, err, ErrInvalidValue)

	// All-or-nothing: the hand and pile are untouched.
	hand, _ := tb.HandOf("a")
	assert.Len(t, hand, 1)
	assert.Empty(t, tb.Pile)
	assert.Equal(t, "a", tb.CurrentPlayerID())
}

func TestPlayOutOfTurn(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	err := tb.Play("b", []Card{card(SuitDiamonds, 2)}, Declaration{Count: 1, Rank: 2})
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestValidateDeclaration(t *testing.T) {
	two := []Card{card(SuitSpades, 5), card(SuitHearts, 5)}

	assert.ErrorIs(t, ValidateDeclaration(Declaration{Count: 0, Rank: 5}, nil, nil), ErrMustPlayCards)
	assert.ErrorIs(t, ValidateDeclaration(Declaration{Count: 1, Rank: 5}, nil, two), ErrInvalidCardCount)
	assert.ErrorIs(t, ValidateDeclaration(Declaration{Count: 2, Rank: 16}, nil, two), ErrInvalidValue)
	assert.ErrorIs(t,
		ValidateDeclaration(Declaration{Count: 1, Rank: 5}, nil, []Card{{Suit: "X", Rank: 5}}),
		ErrInvalidValue)

	// Follow-up must match the prior count; the declared rank is free.
	prior := &Claim{Count: 3, Rank: 7, PlayerID: "a"}
	assert.ErrorIs(t, ValidateDeclaration(Declaration{Count: 2, Rank: 7}, prior, two), ErrInvalidCardCount)
	assert.NoError(t, ValidateDeclaration(Declaration{Count: 2, Rank: 9}, nil, two))
}

func TestChallengeFalseClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 7}))

	res, err := tb.Challenge("b")
	require.NoError(t, err)
	assert.True(t, res.ClaimWasFalse)
	assert.Equal(t, "a", res.ClaimantID)
	assert.Equal(t, "a", res.LoserID)
	assert.Equal(t, 1, res.PileSize)
	assert.Equal(t, []Card{card(SuitSpades, 5)}, res.Revealed)

	// The loser takes the pile and plays next; the round resets.
	hand, _ := tb.HandOf("a")
	assert.Len(t, hand, 2)
	assert.Empty(t, tb.Pile)
	assert.Nil(t, tb.LastClaim)
	assert.Equal(t, "a", tb.CurrentPlayerID())
	assert.Equal(t, 3, tb.CardsTotal())
}

func TestChallengeTruthfulClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))

	res, err := tb.Challenge("b")
	require.NoError(t, err)
	assert.False(t, res.ClaimWasFalse)
	assert.Equal(t, "b", res.LoserID)

	hand, _ := tb.HandOf("b")
	assert.Len(t, hand, 2)
	assert.Equal(t, "b", tb.CurrentPlayerID())
}

func TestChallengeOwnClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 7}))
	_, err := tb.Pass("b")
	require.NoError(t, err)
	done, err := tb.Pass("c")
	require.NoError(t, err)
	require.True(t, done)

	// The round came back to the claimant with their claim still standing;
	// challenging it themselves would hand them the pile either way.
	require.Equal(t, "a", tb.CurrentPlayerID())
	_, err = tb.Challenge("a")
	assert.ErrorIs(t, err, ErrNoCardsToChallenge)
}

func TestChallengeWithoutClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	_, err := tb.Challenge("a")
	assert.ErrorIs(t, err, ErrNoCardsToChallenge)
}

func TestPassRoundComplete(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))

	done, err := tb.Pass("b")
	require.NoError(t, err)
	assert.False(t, done)

	done, err = tb.Pass("c")
	require.NoError(t, err)
	assert.True(t, done, "every player but the claimant has passed")

	// The turn comes back to the claimant; their passed flag is clear.
	assert.Equal(t, "a", tb.CurrentPlayerID())
	assert.False(t, tb.Passed["a"])
}

func TestPassWithoutClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	done, err := tb.Pass("a")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "b", tb.CurrentPlayerID())
}

func TestWinOnEmptyHand(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2), card(SuitHearts, 2), card(SuitClubs, 2)},
		"c": {card(SuitHearts, 3), card(SuitSpades, 3)},
	}, "a", "b", "c")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))

	assert.True(t, tb.Finished)
	// Winner first, then remaining seats by ascending hand size.
	assert.Equal(t, []string{"a", "c", "b"}, tb.Winners)
}

func TestAwardRound(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 9)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))
	tb.AwardRound("a")

	hand, _ := tb.HandOf("a")
	assert.Len(t, hand, 2)
	assert.Empty(t, tb.Pile)
	assert.Nil(t, tb.LastClaim)
	assert.Equal(t, "a", tb.CurrentPlayerID())
}

func TestRemovePlayerDumpsHandToPile(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2), card(SuitHearts, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")

	require.True(t, tb.RemovePlayer("b"))
	assert.Equal(t, []string{"a", "c"}, tb.Seats)
	assert.Len(t, tb.Pile, 2)
	assert.Equal(t, 4, tb.CardsTotal())
	assert.False(t, tb.RemovePlayer("b"))
}

func TestRemovePlayerTurnFixup(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 5)},
		"b": {card(SuitDiamonds, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")
	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))
	require.Equal(t, "b", tb.CurrentPlayerID())

	// Removing the current player hands the turn to the next seat.
	tb.RemovePlayer("b")
	assert.Equal(t, "c", tb.CurrentPlayerID())

	// Removing a seat before the current one shifts the index back.
	tb2 := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 5)},
		"b": {card(SuitDiamonds, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")
	require.NoError(t, tb2.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))
	tb2.RemovePlayer("a")
	assert.Equal(t, "b", tb2.CurrentPlayerID())
}

func TestRemoveClaimantClearsClaim(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5), card(SuitClubs, 5)},
		"b": {card(SuitDiamonds, 2)},
		"c": {card(SuitHearts, 3)},
	}, "a", "b", "c")
	require.NoError(t, tb.Play("a", []Card{card(SuitSpades, 5)}, Declaration{Count: 1, Rank: 5}))

	tb.RemovePlayer("a")
	assert.Nil(t, tb.LastClaim)
	assert.Nil(t, tb.LastPlayed)

	// With no claim there is nothing to challenge.
	_, err := tb.Challenge(tb.CurrentPlayerID())
	assert.ErrorIs(t, err, ErrNoCardsToChallenge)
}

func TestRemovePlayerFinishesLastSeat(t *testing.T) {
	tb := fixedTable(map[string][]Card{
		"a": {card(SuitSpades, 5)},
		"b": {card(SuitDiamonds, 2)},
	}, "a", "b")

	tb.RemovePlayer("a")
	assert.True(t, tb.Finished)
	assert.Equal(t, []string{"b"}, tb.Winners)
}

func TestClaimIsFalse(t *testing.T) {
	assert.False(t, ClaimIsFalse(5, []Card{card(SuitSpades, 5), card(SuitHearts, 5)}))
	assert.True(t, ClaimIsFalse(5, []Card{card(SuitSpades, 5), card(SuitHearts, 9)}))
	assert.False(t, ClaimIsFalse(5, nil))
}
