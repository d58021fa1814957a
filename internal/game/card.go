package game

import "fmt"

// Suit is a single-letter suit code, or empty for jokers.
type Suit string

const (
	SuitSpades   Suit = "S"
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitNone     Suit = "" // jokers carry no suit
)

// Rank values. 1..13 are Ace through King, jokers sit above.
const (
	RankAce       = 1
	RankJack      = 11
	RankQueen     = 12
	RankKing      = 13
	RankJokerLow  = 14
	RankJokerHigh = 15
)

var suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

var rankNames = map[int]string{
	1: "A", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
	8: "8", 9: "9", 10: "10", 11: "J", 12: "Q", 13: "K",
	14: "joker", 15: "JOKER",
}

// Card is an immutable card value. Equality is by (suit, rank).
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool {
	return c.Rank == RankJokerLow || c.Rank == RankJokerHigh
}

// Valid reports whether the card is a resolvable deck card: a suited card
// with rank 1..13, or a suitless joker.
func (c Card) Valid() bool {
	if c.IsJoker() {
		return c.Suit == SuitNone
	}
	if c.Rank < RankAce || c.Rank > RankKing {
		return false
	}
	for _, s := range suits {
		if c.Suit == s {
			return true
		}
	}
	return false
}

func (c Card) String() string {
	name, ok := rankNames[c.Rank]
	if !ok {
		return fmt.Sprintf("?(%s%d)", c.Suit, c.Rank)
	}
	if c.IsJoker() {
		return name
	}
	return string(c.Suit) + name
}

// RecognizedRank reports whether rank is one of the 13 ordinal ranks or a joker.
func RecognizedRank(rank int) bool {
	return rank >= RankAce && rank <= RankJokerHigh
}

// CountRank returns how many cards in hand have the given rank.
func CountRank(hand []Card, rank int) int {
	n := 0
	for _, c := range hand {
		if c.Rank == rank {
			n++
		}
	}
	return n
}
