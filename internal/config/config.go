package config

import (
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// RobotWeights parametrizes the robot decision model. Every knob can be
// overridden from the environment for tuning without a rebuild.
type RobotWeights struct {
	// Base challenge probability per difficulty tier.
	ChallengeEasy    float64 `env:"CH_BASE_EASY" envDefault:"0.20"`
	ChallengeMedium  float64 `env:"CH_BASE_MEDIUM" envDefault:"0.40"`
	ChallengeHard    float64 `env:"CH_BASE_HARD" envDefault:"0.60"`
	ChallengeDefault float64 `env:"CH_BASE_DEFAULT" envDefault:"0.30"`

	// Additive bonuses.
	BonusSmallHand float64 `env:"CH_BONUS_SMALL_HAND" envDefault:"0.20"` // robot holds <= 3 cards
	BonusBigClaim  float64 `env:"CH_BONUS_BIG_CLAIM" envDefault:"0.30"`  // claim implies > 4 of a rank
	BonusNoneHeld  float64 `env:"CH_BONUS_NONE_HELD" envDefault:"0.20"`  // HARD only
	BonusManyHeld  float64 `env:"CH_BONUS_MANY_HELD" envDefault:"0.15"`  // HARD only, >= 3 held

	// Lie probabilities when generating a claim.
	LieFreshEasy    float64 `env:"LIE_FRESH_EASY" envDefault:"0.10"`
	LieFreshMedium  float64 `env:"LIE_FRESH_MEDIUM" envDefault:"0.30"`
	LieFreshHard    float64 `env:"LIE_FRESH_HARD" envDefault:"0.50"`
	LieFollowEasy   float64 `env:"LIE_FOLLOW_EASY" envDefault:"0.30"`
	LieFollowMedium float64 `env:"LIE_FOLLOW_MEDIUM" envDefault:"0.50"`
	LieFollowHard   float64 `env:"LIE_FOLLOW_HARD" envDefault:"0.70"`

	// Maximum cards offered when opening a round.
	MaxPlayEasy   int `env:"MAX_PLAY_EASY" envDefault:"1"`
	MaxPlayMedium int `env:"MAX_PLAY_MEDIUM" envDefault:"2"`
	MaxPlayHard   int `env:"MAX_PLAY_HARD" envDefault:"3"`
}

type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	RedisAddr string `env:"REDIS_ADDR"` // empty disables the action history

	// Room janitor.
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	FinishedRoomTTL time.Duration `env:"FINISHED_ROOM_TTL" envDefault:"10m"`

	// Optional rule: award the pile to the last claimant when every other
	// player has passed.
	AwardPileOnRoundReset bool `env:"AWARD_PILE_ON_ROUND_RESET" envDefault:"false"`

	Robot RobotWeights

	// Guards Robot, which can be swapped at runtime through the admin
	// endpoint while robot turns read it.
	mu sync.RWMutex
}

// GetRobot returns the robot weights currently in effect.
func (c *Config) GetRobot() RobotWeights {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Robot
}

// SetRobot swaps the robot weights. Strategies built afterwards use the new
// values; running turns keep the copy they started with.
func (c *Config) SetRobot(w RobotWeights) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Robot = w
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, ignoring the environment.
// Used by tests and the terminal playground.
func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		SweepInterval:   time.Minute,
		FinishedRoomTTL: 10 * time.Minute,
		Robot: RobotWeights{
			ChallengeEasy:    0.20,
			ChallengeMedium:  0.40,
			ChallengeHard:    0.60,
			ChallengeDefault: 0.30,
			BonusSmallHand:   0.20,
			BonusBigClaim:    0.30,
			BonusNoneHeld:    0.20,
			BonusManyHeld:    0.15,
			LieFreshEasy:     0.10,
			LieFreshMedium:   0.30,
			LieFreshHard:     0.50,
			LieFollowEasy:    0.30,
			LieFollowMedium:  0.50,
			LieFollowHard:    0.70,
			MaxPlayEasy:      1,
			MaxPlayMedium:    2,
			MaxPlayHard:      3,
		},
	}
}
