package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Physics holds the movement and weapon tuning shared by all characters.
type Physics struct {
	PlayerSpeed      float64 // px/s
	BotSpeed         float64 // px/s
	ProjectileSpeed  float64 // px/s
	CharacterRadius  float64
	ProjectileRadius float64
	ProjectileDamage float64
	MaxHealth        float64
	FireRateMs       float64 // player cooldown
	BotFirePenaltyMs float64 // added to FireRateMs for bots
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() Physics {
	return Physics{
		PlayerSpeed:      300,
		BotSpeed:         260,
		ProjectileSpeed:  800,
		CharacterRadius:  20,
		ProjectileRadius: 5,
		ProjectileDamage: 25,
		MaxHealth:        100,
		FireRateMs:       200,
		BotFirePenaltyMs: 200, // bots fire slower
	}
}

// Config is the static match configuration. It is copied into the engine
// at construction and never changes afterwards.
type Config struct {
	Width, Height float64
	BotCount      int
	MatchDuration float64 // seconds
	ScoreToWin    int
	Obstacles     []Rect
	Physics       Physics

	// AutopilotPlayer makes the player run the bot decision loop instead of
	// reading input. Used by headless runs and attract mode.
	AutopilotPlayer bool
}

// DefaultConfig returns a 1600x900 arena with 5 bots, 3 minutes and 15 kills to win.
func DefaultConfig() Config {
	return Config{
		Width:         1600,
		Height:        900,
		BotCount:      5,
		MatchDuration: 180,
		ScoreToWin:    15,
		Obstacles:     DefaultObstacles(),
		Physics:       DefaultPhysics(),
	}
}

// Validate checks the configuration. Every error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	p := c.Physics
	switch {
	case p.CharacterRadius <= 0 || p.ProjectileRadius <= 0:
		return fmt.Errorf("%w: radii must be positive (character %.1f, projectile %.1f)",
			ErrInvalidConfig, p.CharacterRadius, p.ProjectileRadius)
	case c.Width <= 2*p.CharacterRadius || c.Height <= 2*p.CharacterRadius:
		return fmt.Errorf("%w: arena %.0fx%.0f too small for character radius %.1f",
			ErrInvalidConfig, c.Width, c.Height, p.CharacterRadius)
	case c.BotCount < 0:
		return fmt.Errorf("%w: bot count %d is negative", ErrInvalidConfig, c.BotCount)
	case c.MatchDuration <= 0:
		return fmt.Errorf("%w: match duration %.1fs must be positive", ErrInvalidConfig, c.MatchDuration)
	case c.ScoreToWin <= 0:
		return fmt.Errorf("%w: score to win %d must be positive", ErrInvalidConfig, c.ScoreToWin)
	case p.MaxHealth <= 0:
		return fmt.Errorf("%w: max health %.1f must be positive", ErrInvalidConfig, p.MaxHealth)
	case p.ProjectileDamage <= 0:
		return fmt.Errorf("%w: projectile damage %.1f must be positive", ErrInvalidConfig, p.ProjectileDamage)
	case p.PlayerSpeed < 0 || p.BotSpeed < 0 || p.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: speeds must be non-negative and projectile speed positive", ErrInvalidConfig)
	case p.FireRateMs < 0 || p.BotFirePenaltyMs < 0:
		return fmt.Errorf("%w: fire rates must be non-negative", ErrInvalidConfig)
	}
	for i, r := range c.Obstacles {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("%w: obstacle %d has non-positive size %.0fx%.0f", ErrInvalidConfig, i, r.W, r.H)
		}
	}
	return nil
}
