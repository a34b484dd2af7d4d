package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg MeteorConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMeteorConfig()) {
		t.Errorf("embedded YAML = %+v\nexpected %+v", cfg, DefaultMeteorConfig())
	}
}

func TestDefaultsMatchSimulation(t *testing.T) {
	if got := DefaultMeteorConfig().Sim(); !reflect.DeepEqual(got, meteor.DefaultConfig()) {
		t.Errorf("Sim() = %+v\nexpected %+v", got, meteor.DefaultConfig())
	}
}

func TestLoadMeteorCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("difficulty:\n  initial_interval_ms: 3000\nground:\n  pattern: [1]\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMeteor(path)
	if err != nil {
		t.Fatalf("LoadMeteor() failed: %v", err)
	}
	if cfg.Difficulty.InitialIntervalMS != 3000 {
		t.Errorf("initial interval = %d, expected 3000", cfg.Difficulty.InitialIntervalMS)
	}
	if !reflect.DeepEqual(cfg.Ground.Pattern, []int{1}) {
		t.Errorf("pattern = %v, expected [1]", cfg.Ground.Pattern)
	}
	// Keys missing from the file keep their defaults
	if cfg.Difficulty.MinIntervalMS != 200 || cfg.PowerUps.GunDurationMS != 10000 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMeteorErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMeteor(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("world: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMeteor(broken); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("strike_limit: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMeteor(invalid); !errors.Is(err, meteor.ErrInvalidConfig) {
		t.Errorf("LoadMeteor() = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadMeteorSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadMeteor("")
	if err != nil {
		t.Fatalf("LoadMeteor() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMeteorConfig()) {
		t.Error("with no files present the embedded defaults should be used")
	}

	local := filepath.Join(work, "configs")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(local, "meteor.yaml"), []byte("strike_limit: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadMeteor("")
	if cfg.StrikeLimit != 4 {
		t.Errorf("local config ignored, strike limit = %d", cfg.StrikeLimit)
	}

	user := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(user, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(user, "meteor.yaml"), []byte("strike_limit: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadMeteor("")
	if cfg.StrikeLimit != 5 {
		t.Errorf("user config should win over local, strike limit = %d", cfg.StrikeLimit)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultMeteorConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var cfg MeteorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("marshalled YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMeteorConfig()) {
		t.Error("Marshal output should decode back to the same config")
	}
}

func TestApplyMeteorPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		enabled  bool
		initial  time.Duration
		floor    time.Duration
		firstGap time.Duration // Interval after one escalation
	}{
		{DifficultyEasy, true, 2500 * time.Millisecond, 400 * time.Millisecond, 2480 * time.Millisecond},
		{DifficultyNormal, true, 2000 * time.Millisecond, 200 * time.Millisecond, 1960 * time.Millisecond},
		{DifficultyHard, true, 1500 * time.Millisecond, 150 * time.Millisecond, 1440 * time.Millisecond},
		{DifficultyFixed, false, 2000 * time.Millisecond, 200 * time.Millisecond, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultMeteorConfig()
			ApplyMeteorPreset(&cfg, tt.preset)
			sim := cfg.Sim()

			if err := sim.Validate(); err != nil {
				t.Fatalf("preset produced invalid config: %v", err)
			}
			if sim.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", sim.Difficulty.Enabled, tt.enabled)
			}
			if sim.Difficulty.InitialInterval != tt.initial || sim.Difficulty.MinInterval != tt.floor {
				t.Errorf("interval range = [%v, %v], expected [%v, %v]",
					sim.Difficulty.MinInterval, sim.Difficulty.InitialInterval, tt.floor, tt.initial)
			}

			d := meteor.NewDifficultyController(sim.Difficulty)
			d.Advance(time.Second)
			if d.Interval() != tt.firstGap {
				t.Errorf("interval after 1s = %v, expected %v", d.Interval(), tt.firstGap)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}
