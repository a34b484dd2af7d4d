package config

import (
	_ "embed"
)

//go:embed defaults/meteor.yaml
var defaultMeteorYAML []byte

// DefaultMeteorConfig returns the built-in tuning. It matches
// defaults/meteor.yaml.
func DefaultMeteorConfig() MeteorConfig {
	return MeteorConfig{
		World:       WorldConfig{Width: 480, Height: 640},
		StrikeLimit: 3,
		Difficulty: DifficultyConfig{
			Enabled:           true,
			InitialIntervalMS: 2000,
			MinIntervalMS:     200,
			StepMS:            20,
			CadenceMS:         1000,
			Applications:      2,
		},
		Meteors: MeteorsConfig{
			Inset:           20,
			SpawnY:          -20,
			MinSpeed:        150,
			MaxSpeed:        300,
			Size:            32,
			Zigzag:          true,
			ZigzagAmplitude: 50,
			ZigzagFrequency: 2,
		},
		PowerUps: PowerUpsConfig{
			GunSpawnIntervalMS:       5000,
			SecretBoxSpawnIntervalMS: 8000,
			Inset:                    50,
			GunFallSpeed:             200,
			SecretBoxFallSpeed:       100,
			PickupSize:               24,
			GunDurationMS:            10000,
			AutoFireIntervalMS:       1000,
			BulletSpeed:              1200,
			BulletWidth:              6,
			BulletHeight:             14,
			MuzzleOffsetX:            15,
			MuzzleOffsetY:            -10,
		},
		Player: PlayerConfig{
			WalkSpeed:     200,
			Width:         32,
			Height:        48,
			HitDurationMS: 1000,
		},
		Ground: GroundConfig{
			Thickness:  16,
			StepHeight: 16,
			WaitMS:     5000,
			Pattern:    []int{2, 1},
			Ceiling:    160,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMeteorYAML
}
