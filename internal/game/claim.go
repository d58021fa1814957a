package game

import "fmt"

// Declaration is a player's stated "count cards of rank" for a play. The rank
// is the claim under challenge; it does not have to match the hand contents.
type Declaration struct {
	Count int `json:"count"`
	Rank  int `json:"rank"`
}

// Claim is the most recent declaration together with who made it.
type Claim struct {
	Count    int    `json:"count"`
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
}

// ValidateDeclaration checks a play's declaration against the rules and the
// prior claim of the current round (nil when the round is fresh).
//
//   - cards must be non-empty and each card must be a resolvable deck card
//   - decl.Count must equal len(cards)
//   - decl.Rank must be one of the 13 ranks or a joker
//   - a follow-up play must declare the same count as the prior claim; the
//     declared rank is free-form
func ValidateDeclaration(decl Declaration, prior *Claim, cards []Card) error {
	if len(cards) == 0 {
		return ErrMustPlayCards
	}
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: unresolvable card %v", ErrInvalidValue, c)
		}
	}
	if decl.Count != len(cards) {
		return fmt.Errorf("%w: declared %d, played %d", ErrInvalidCardCount, decl.Count, len(cards))
	}
	if !RecognizedRank(decl.Rank) {
		return fmt.Errorf("%w: rank %d", ErrInvalidValue, decl.Rank)
	}
	if prior != nil && decl.Count != prior.Count {
		return fmt.Errorf("%w: round requires %d cards", ErrInvalidCardCount, prior.Count)
	}
	return nil
}

// ClaimIsFalse reports whether the played cards betray the declaration: the
// claim is false if any played card has a rank different from the declared one.
func ClaimIsFalse(declaredRank int, played []Card) bool {
	for _, c := range played {
		if c.Rank != declaredRank {
			return true
		}
	}
	return false
}
