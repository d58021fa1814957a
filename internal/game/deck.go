package game

import (
	"math/rand"
	"time"
)

// DeckSize is one deck unit: 4 suits x 13 ranks plus two jokers.
const DeckSize = 54

// NewDeckUnit returns one unshuffled 54-card deck unit.
func NewDeckUnit() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range suits {
		for r := RankAce; r <= RankKing; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	deck = append(deck, Card{Suit: SuitNone, Rank: RankJokerLow})
	deck = append(deck, Card{Suit: SuitNone, Rank: RankJokerHigh})
	return deck
}

// GenerateShuffledDecks concatenates n deck units and Fisher-Yates shuffles them.
func GenerateShuffledDecks(n int) []Card {
	if n < 1 {
		n = 1
	}
	deck := make([]Card, 0, n*DeckSize)
	for i := 0; i < n; i++ {
		deck = append(deck, NewDeckUnit()...)
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Deal distributes deck round-robin starting from playerIDs[0] until the deck
// is exhausted. Hand sizes differ by at most one.
func Deal(deck []Card, playerIDs []string) map[string][]Card {
	hands := make(map[string][]Card, len(playerIDs))
	for _, id := range playerIDs {
		hands[id] = []Card{}
	}
	if len(playerIDs) == 0 {
		return hands
	}
	for i, c := range deck {
		id := playerIDs[i%len(playerIDs)]
		hands[id] = append(hands[id], c)
	}
	return hands
}
