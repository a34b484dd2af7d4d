package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "meteor.yaml"

// LoadMeteor loads the game tuning.
// Search order: customPath -> ~/.arcade/configs/meteor.yaml -> ./configs/meteor.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
// The result is validated against the simulation's rules.
func LoadMeteor(customPath string) (MeteorConfig, error) {
	cfg, err := loadMeteor(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Sim().Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadMeteor(customPath string) (MeteorConfig, error) {
	cfg := DefaultMeteorConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultMeteorConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultMeteorConfig()
	}

	if err := yaml.Unmarshal(defaultMeteorYAML, &cfg); err != nil {
		return DefaultMeteorConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal renders the tuning as YAML.
func Marshal(cfg MeteorConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
