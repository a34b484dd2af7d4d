package meteor

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned (wrapped) by Config.Validate and NewSession
// when a tuning value is out of range.
var ErrInvalidConfig = errors.New("meteor: invalid config")

// Config holds every tunable of a session. All durations are measured on the
// session's logical clock; distances are world pixels and speeds are pixels
// per second.
type Config struct {
	World       WorldConfig
	Difficulty  DifficultyConfig
	Meteors     MeteorConfig
	PowerUps    PowerUpConfig
	Player      PlayerConfig
	Ground      GroundConfig
	StrikeLimit int // Strikes that end the session
}

// WorldConfig is the size of the play area. Y grows downward.
type WorldConfig struct {
	Width  float64
	Height float64
}

// DifficultyConfig drives the meteor spawn interval.
type DifficultyConfig struct {
	Enabled         bool
	InitialInterval time.Duration // Meteor spawn interval at session start
	MinInterval     time.Duration // Floor the interval never drops below
	Step            time.Duration // Decrement per application
	Cadence         time.Duration // How often an escalation happens
	Applications    int           // Decrements applied per escalation
}

// MeteorConfig describes how meteors are spawned and moved.
type MeteorConfig struct {
	Inset           float64 // Horizontal margin for spawn positions
	SpawnY          float64
	MinSpeed        float64
	MaxSpeed        float64
	Size            float64
	Zigzag          bool
	ZigzagAmplitude float64
	ZigzagFrequency float64
}

// PowerUpConfig covers the gun and secret box pickups and the bullets the gun fires.
type PowerUpConfig struct {
	GunSpawnInterval       time.Duration
	SecretBoxSpawnInterval time.Duration
	Inset                  float64
	GunFallSpeed           float64
	SecretBoxFallSpeed     float64
	PickupSize             float64
	GunDuration            time.Duration
	AutoFireInterval       time.Duration
	BulletSpeed            float64
	BulletWidth            float64
	BulletHeight           float64
	MuzzleOffsetX          float64
	MuzzleOffsetY          float64
}

// PlayerConfig describes the walking player.
type PlayerConfig struct {
	WalkSpeed   float64
	Width       float64
	Height      float64
	HitDuration time.Duration
}

// GroundConfig describes the rising ground.
type GroundConfig struct {
	Thickness  float64
	StepHeight float64
	Wait       time.Duration
	Pattern    []int   // Steps per rise, cycled
	Ceiling    float64 // Highest Y the ground top may reach
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{Width: 480, Height: 640},
		Difficulty: DifficultyConfig{
			Enabled:         true,
			InitialInterval: 2000 * time.Millisecond,
			MinInterval:     200 * time.Millisecond,
			Step:            20 * time.Millisecond,
			Cadence:         time.Second,
			Applications:    2,
		},
		Meteors: MeteorConfig{
			Inset:           20,
			SpawnY:          -20,
			MinSpeed:        150,
			MaxSpeed:        300,
			Size:            32,
			Zigzag:          true,
			ZigzagAmplitude: 50,
			ZigzagFrequency: 2,
		},
		PowerUps: PowerUpConfig{
			GunSpawnInterval:       5000 * time.Millisecond,
			SecretBoxSpawnInterval: 8000 * time.Millisecond,
			Inset:                  50,
			GunFallSpeed:           200,
			SecretBoxFallSpeed:     100,
			PickupSize:             24,
			GunDuration:            10 * time.Second,
			AutoFireInterval:       time.Second,
			BulletSpeed:            1200,
			BulletWidth:            6,
			BulletHeight:           14,
			MuzzleOffsetX:          15,
			MuzzleOffsetY:          -10,
		},
		Player: PlayerConfig{
			WalkSpeed:   200,
			Width:       32,
			Height:      48,
			HitDuration: time.Second,
		},
		Ground: GroundConfig{
			Thickness:  16,
			StepHeight: 16,
			Wait:       5 * time.Second,
			Pattern:    []int{2, 1},
			Ceiling:    160,
		},
		StrikeLimit: 3,
	}
}

// Validate reports the first out-of-range value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.Difficulty.InitialInterval <= 0:
		return fmt.Errorf("%w: initial spawn interval must be positive", ErrInvalidConfig)
	case c.Difficulty.MinInterval <= 0:
		return fmt.Errorf("%w: min spawn interval must be positive", ErrInvalidConfig)
	case c.Difficulty.MinInterval > c.Difficulty.InitialInterval:
		return fmt.Errorf("%w: min spawn interval %v exceeds initial %v",
			ErrInvalidConfig, c.Difficulty.MinInterval, c.Difficulty.InitialInterval)
	case c.Difficulty.Step < 0:
		return fmt.Errorf("%w: difficulty step must not be negative", ErrInvalidConfig)
	case c.Difficulty.Enabled && c.Difficulty.Cadence <= 0:
		return fmt.Errorf("%w: difficulty cadence must be positive", ErrInvalidConfig)
	case c.Difficulty.Applications < 0:
		return fmt.Errorf("%w: difficulty applications must not be negative", ErrInvalidConfig)
	case c.Meteors.MinSpeed < 0 || c.Meteors.MaxSpeed < c.Meteors.MinSpeed:
		return fmt.Errorf("%w: meteor speed range [%v, %v] is invalid",
			ErrInvalidConfig, c.Meteors.MinSpeed, c.Meteors.MaxSpeed)
	case c.Meteors.Inset < 0 || 2*c.Meteors.Inset > c.World.Width:
		return fmt.Errorf("%w: meteor inset %v does not fit the world", ErrInvalidConfig, c.Meteors.Inset)
	case c.PowerUps.Inset < 0 || 2*c.PowerUps.Inset > c.World.Width:
		return fmt.Errorf("%w: power-up inset %v does not fit the world", ErrInvalidConfig, c.PowerUps.Inset)
	case c.PowerUps.GunSpawnInterval <= 0 || c.PowerUps.SecretBoxSpawnInterval <= 0:
		return fmt.Errorf("%w: power-up spawn intervals must be positive", ErrInvalidConfig)
	case c.PowerUps.GunDuration <= 0:
		return fmt.Errorf("%w: gun duration must be positive", ErrInvalidConfig)
	case c.PowerUps.AutoFireInterval <= 0:
		return fmt.Errorf("%w: auto-fire interval must be positive", ErrInvalidConfig)
	case c.PowerUps.BulletSpeed <= 0:
		return fmt.Errorf("%w: bullet speed must be positive", ErrInvalidConfig)
	case c.Player.WalkSpeed < 0:
		return fmt.Errorf("%w: player walk speed must not be negative", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.HitDuration < 0:
		return fmt.Errorf("%w: hit duration must not be negative", ErrInvalidConfig)
	case c.Ground.Wait <= 0:
		return fmt.Errorf("%w: ground wait must be positive", ErrInvalidConfig)
	case c.Ground.StepHeight < 0 || c.Ground.Thickness < 0:
		return fmt.Errorf("%w: ground sizes must not be negative", ErrInvalidConfig)
	case c.Ground.Ceiling < 0 || c.Ground.Ceiling > c.World.Height:
		return fmt.Errorf("%w: ground ceiling %v outside the world", ErrInvalidConfig, c.Ground.Ceiling)
	case c.StrikeLimit < 1:
		return fmt.Errorf("%w: strike limit must be at least 1", ErrInvalidConfig)
	}
	for _, steps := range c.Ground.Pattern {
		if steps < 0 {
			return fmt.Errorf("%w: ground pattern must not contain negative steps", ErrInvalidConfig)
		}
	}
	return nil
}
