// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"time"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

// MeteorConfig is the on-disk form of the game tuning.
type MeteorConfig struct {
	World       WorldConfig      `yaml:"world"`
	StrikeLimit int              `yaml:"strike_limit"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
	Meteors     MeteorsConfig    `yaml:"meteors"`
	PowerUps    PowerUpsConfig   `yaml:"power_ups"`
	Player      PlayerConfig     `yaml:"player"`
	Ground      GroundConfig     `yaml:"ground"`
}

// WorldConfig is the play area size.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DifficultyConfig defines how the meteor spawn interval shrinks.
type DifficultyConfig struct {
	Enabled           bool `yaml:"enabled"`
	InitialIntervalMS int  `yaml:"initial_interval_ms"`
	MinIntervalMS     int  `yaml:"min_interval_ms"`
	StepMS            int  `yaml:"step_ms"`
	CadenceMS         int  `yaml:"cadence_ms"`
	Applications      int  `yaml:"applications"` // Steps applied per escalation
}

// MeteorsConfig defines meteor spawning and motion.
type MeteorsConfig struct {
	Inset           float64 `yaml:"inset"`
	SpawnY          float64 `yaml:"spawn_y"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Size            float64 `yaml:"size"`
	Zigzag          bool    `yaml:"zigzag"`
	ZigzagAmplitude float64 `yaml:"zigzag_amplitude"`
	ZigzagFrequency float64 `yaml:"zigzag_frequency"`
}

// PowerUpsConfig defines the gun and secret box pickups.
type PowerUpsConfig struct {
	GunSpawnIntervalMS       int     `yaml:"gun_spawn_interval_ms"`
	SecretBoxSpawnIntervalMS int     `yaml:"secret_box_spawn_interval_ms"`
	Inset                    float64 `yaml:"inset"`
	GunFallSpeed             float64 `yaml:"gun_fall_speed"`
	SecretBoxFallSpeed       float64 `yaml:"secret_box_fall_speed"`
	PickupSize               float64 `yaml:"pickup_size"`
	GunDurationMS            int     `yaml:"gun_duration_ms"`
	AutoFireIntervalMS       int     `yaml:"auto_fire_interval_ms"`
	BulletSpeed              float64 `yaml:"bullet_speed"`
	BulletWidth              float64 `yaml:"bullet_width"`
	BulletHeight             float64 `yaml:"bullet_height"`
	MuzzleOffsetX            float64 `yaml:"muzzle_offset_x"`
	MuzzleOffsetY            float64 `yaml:"muzzle_offset_y"`
}

// PlayerConfig defines the walking player.
type PlayerConfig struct {
	WalkSpeed     float64 `yaml:"walk_speed"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	HitDurationMS int     `yaml:"hit_duration_ms"`
}

// GroundConfig defines the rising ground.
type GroundConfig struct {
	Thickness  float64 `yaml:"thickness"`
	StepHeight float64 `yaml:"step_height"`
	WaitMS     int     `yaml:"wait_ms"`
	Pattern    []int   `yaml:"pattern"`
	Ceiling    float64 `yaml:"ceiling"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Sim converts the file form into the simulation tuning.
func (c MeteorConfig) Sim() meteor.Config {
	return meteor.Config{
		World: meteor.WorldConfig{Width: c.World.Width, Height: c.World.Height},
		Difficulty: meteor.DifficultyConfig{
			Enabled:         c.Difficulty.Enabled,
			InitialInterval: ms(c.Difficulty.InitialIntervalMS),
			MinInterval:     ms(c.Difficulty.MinIntervalMS),
			Step:            ms(c.Difficulty.StepMS),
			Cadence:         ms(c.Difficulty.CadenceMS),
			Applications:    c.Difficulty.Applications,
		},
		Meteors: meteor.MeteorConfig{
			Inset:           c.Meteors.Inset,
			SpawnY:          c.Meteors.SpawnY,
			MinSpeed:        c.Meteors.MinSpeed,
			MaxSpeed:        c.Meteors.MaxSpeed,
			Size:            c.Meteors.Size,
			Zigzag:          c.Meteors.Zigzag,
			ZigzagAmplitude: c.Meteors.ZigzagAmplitude,
			ZigzagFrequency: c.Meteors.ZigzagFrequency,
		},
		PowerUps: meteor.PowerUpConfig{
			GunSpawnInterval:       ms(c.PowerUps.GunSpawnIntervalMS),
			SecretBoxSpawnInterval: ms(c.PowerUps.SecretBoxSpawnIntervalMS),
			Inset:                  c.PowerUps.Inset,
			GunFallSpeed:           c.PowerUps.GunFallSpeed,
			SecretBoxFallSpeed:     c.PowerUps.SecretBoxFallSpeed,
			PickupSize:             c.PowerUps.PickupSize,
			GunDuration:            ms(c.PowerUps.GunDurationMS),
			AutoFireInterval:       ms(c.PowerUps.AutoFireIntervalMS),
			BulletSpeed:            c.PowerUps.BulletSpeed,
			BulletWidth:            c.PowerUps.BulletWidth,
			BulletHeight:           c.PowerUps.BulletHeight,
			MuzzleOffsetX:          c.PowerUps.MuzzleOffsetX,
			MuzzleOffsetY:          c.PowerUps.MuzzleOffsetY,
		},
		Player: meteor.PlayerConfig{
			WalkSpeed:   c.Player.WalkSpeed,
			Width:       c.Player.Width,
			Height:      c.Player.Height,
			HitDuration: ms(c.Player.HitDurationMS),
		},
		Ground: meteor.GroundConfig{
			Thickness:  c.Ground.Thickness,
			StepHeight: c.Ground.StepHeight,
			Wait:       ms(c.Ground.WaitMS),
			Pattern:    append([]int(nil), c.Ground.Pattern...),
			Ceiling:    c.Ground.Ceiling,
		},
		StrikeLimit: c.StrikeLimit,
	}
}
