// Package robot implements the decision strategy for machine players.
//
// Decisions are drawn from a probability model parametrized by the room's
// difficulty tier; all weights come from config so they can be tuned from the
// environment.
package robot

import (
	"math/rand"
	"time"

	"bluff-card/internal/config"
	"bluff-card/internal/game"
)

// Difficulty selects the probability tier for a room's robots.
type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Medium Difficulty = "MEDIUM"
	Hard   Difficulty = "HARD"
)

// ParseDifficulty maps a client-supplied string onto a tier. Unknown values
// return "" and the strategy falls back to its default base probability.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	}
	return ""
}

// Strategy produces the three decisions a robot makes during play.
type Strategy interface {
	// DecideToChallenge draws whether to challenge the standing claim.
	DecideToChallenge(claim *game.Claim, pileSize int, hand []game.Card) bool
	// SelectCardsToPlay picks the cards to offer this turn. A nil result
	// means the robot passes instead of playing.
	SelectCardsToPlay(claim *game.Claim, hand []game.Card) []game.Card
	// GenerateClaim produces the declaration accompanying the selected cards.
	GenerateClaim(selected []game.Card, claim *game.Claim) game.Declaration
}

// weighted is the tiered probability strategy.
type weighted struct {
	tier Difficulty
	w    config.RobotWeights
	rng  *rand.Rand
}

// New returns the standard strategy for a difficulty tier.
func New(tier Difficulty, w config.RobotWeights) Strategy {
	return &weighted{
		tier: tier,
		w:    w,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newSeeded is used by tests for deterministic draws.
func newSeeded(tier Difficulty, w config.RobotWeights, seed int64) *weighted {
	return &weighted{tier: tier, w: w, rng: rand.New(rand.NewSource(seed))}
}

// challengeProbability accumulates the additive model. The sum can exceed 1.0
// (a draw against it then always challenges); the additive shape is kept
// as-is rather than clamped.
func (s *weighted) challengeProbability(claim *game.Claim, hand []game.Card) float64 {
	var p float64
	switch s.tier {
	case Easy:
		p = s.w.ChallengeEasy
	case Medium:
		p = s.w.ChallengeMedium
	case Hard:
		p = s.w.ChallengeHard
	default:
		p = s.w.ChallengeDefault
	}

	if len(hand) <= 3 {
		p += s.w.BonusSmallHand
	}

	held := game.CountRank(hand, claim.Rank)
	if claim.Count > 4 || claim.Count+held > 4 {
		p += s.w.BonusBigClaim
	}

	if s.tier == Hard {
		if held == 0 {
			p += s.w.BonusNoneHeld
		} else if held >= 3 {
			p += s.w.BonusManyHeld
		}
	}
	return p
}

func (s *weighted) DecideToChallenge(claim *game.Claim, pileSize int, hand []game.Card) bool {
	if claim == nil {
		return false
	}
	return s.rng.Float64() < s.challengeProbability(claim, hand)
}

// SelectCardsToPlay picks the offer for this turn.
//
// Opening a round: the largest same-rank group, capped by the tier's max.
// Following: exactly claim.Count cards, truthfully if some rank has enough
// copies, otherwise a bluff drawn against the follow-lie probability. A
// failed bluff draw returns nil (the robot passes).
func (s *weighted) SelectCardsToPlay(claim *game.Claim, hand []game.Card) []game.Card {
	if len(hand) == 0 {
		return nil
	}
	if claim == nil {
		rank := bestRank(hand)
		count := game.CountRank(hand, rank)
		if max := s.maxOpenCount(); count > max {
			count = max
		}
		return takeRank(hand, rank, count)
	}

	need := claim.Count
	if need > len(hand) {
		return nil
	}
	if rank, ok := rankWithAtLeast(hand, need); ok {
		return takeRank(hand, rank, need)
	}
	if s.rng.Float64() < s.followLieProbability() {
		// Bluff with the least useful cards: smallest rank groups first.
		return takeScattered(hand, need)
	}
	return nil
}

// GenerateClaim declares truthfully when the selected cards share a rank, and
// otherwise claims the round's rank (follow-up) or a random lie (opening,
// drawn against the fresh-lie probability).
func (s *weighted) GenerateClaim(selected []game.Card, claim *game.Claim) game.Declaration {
	decl := game.Declaration{Count: len(selected)}
	if claim != nil {
		// Follow-up: declare the actual rank when the offer is honest,
		// otherwise hide behind the round's rank.
		if r, ok := uniformRank(selected); ok {
			decl.Rank = r
		} else {
			decl.Rank = claim.Rank
		}
		return decl
	}

	r, uniform := uniformRank(selected)
	if uniform && s.rng.Float64() >= s.freshLieProbability() {
		decl.Rank = r
		return decl
	}
	// Lie: any recognized rank other than what was actually played.
	for {
		decl.Rank = game.RankAce + s.rng.Intn(game.RankJokerHigh)
		if !uniform || decl.Rank != r {
			return decl
		}
	}
}

func (s *weighted) maxOpenCount() int {
	switch s.tier {
	case Medium:
		return s.w.MaxPlayMedium
	case Hard:
		return s.w.MaxPlayHard
	default:
		return s.w.MaxPlayEasy
	}
}

func (s *weighted) freshLieProbability() float64 {
	switch s.tier {
	case Medium:
		return s.w.LieFreshMedium
	case Hard:
		return s.w.LieFreshHard
	default:
		return s.w.LieFreshEasy
	}
}

func (s *weighted) followLieProbability() float64 {
	switch s.tier {
	case Medium:
		return s.w.LieFollowMedium
	case Hard:
		return s.w.LieFollowHard
	default:
		return s.w.LieFollowEasy
	}
}

// bestRank returns the rank with the most copies in hand (lowest rank wins
// ties, keeping high cards for later rounds).
func bestRank(hand []game.Card) int {
	counts := map[int]int{}
	for _, c := range hand {
		counts[c.Rank]++
	}
	best, bestN := 0, 0
	for r := game.RankAce; r <= game.RankJokerHigh; r++ {
		if counts[r] > bestN {
			best, bestN = r, counts[r]
		}
	}
	return best
}

func rankWithAtLeast(hand []game.Card, n int) (int, bool) {
	for r := game.RankAce; r <= game.RankJokerHigh; r++ {
		if game.CountRank(hand, r) >= n {
			return r, true
		}
	}
	return 0, false
}

func takeRank(hand []game.Card, rank, n int) []game.Card {
	out := make([]game.Card, 0, n)
	for _, c := range hand {
		if c.Rank == rank && len(out) < n {
			out = append(out, c)
		}
	}
	return out
}

// takeScattered picks n cards from the smallest rank groups, the ones least
// likely to form a truthful play later.
func takeScattered(hand []game.Card, n int) []game.Card {
	counts := map[int]int{}
	for _, c := range hand {
		counts[c.Rank]++
	}
	sorted := append([]game.Card(nil), hand...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if counts[sorted[j].Rank] < counts[sorted[i].Rank] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted[:n]
}

// uniformRank reports whether all cards share one rank, and which.
func uniformRank(cards []game.Card) (int, bool) {
	if len(cards) == 0 {
		return 0, false
	}
	r := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != r {
			return 0, false
		}
	}
	return r, true
}
