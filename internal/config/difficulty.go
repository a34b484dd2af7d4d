package config

import "fmt"

// ParsePreset maps a CLI flag value to a preset. The empty string means
// "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyMeteorPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded ramp; fixed keeps the initial interval for the
// whole run.
func ApplyMeteorPreset(cfg *MeteorConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialIntervalMS = 2500
		cfg.Difficulty.MinIntervalMS = 400
		cfg.Difficulty.Applications = 1
	case DifficultyHard:
		cfg.Difficulty.InitialIntervalMS = 1500
		cfg.Difficulty.MinIntervalMS = 150
		cfg.Difficulty.StepMS = 30
	}
}
