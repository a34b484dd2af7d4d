// Package savedata keeps the desktop client's settings and personal best
// in the platform's per-user data directory.
package savedata

import (
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName names the data directory.
const AppName = "meteor_arcade"

const (
	settingsObject = "settings"
	recordsObject  = "records"
	globalProp     = "global"
	bestProp       = "best"
)

// Settings are the client preferences that survive restarts.
type Settings struct {
	SoundEnabled bool    `yaml:"sound_enabled"`
	SoundVolume  float64 `yaml:"sound_volume"`
	Fullscreen   bool    `yaml:"fullscreen"`
	Difficulty   string  `yaml:"difficulty"`
}

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: true,
		SoundVolume:  0.8,
		Difficulty:   "normal",
	}
}

// BestRun is the longest survival recorded on this machine.
type BestRun struct {
	Score       time.Duration `yaml:"score"`
	Strikes     int           `yaml:"strikes"`
	MeteorsShot int           `yaml:"meteors_shot"`
	Seed        int64         `yaml:"seed"`
	At          time.Time     `yaml:"at"`
}

// Store reads and writes save data. A Store without a backing manager keeps
// everything in memory.
type Store struct {
	m        *gdata.Manager
	settings Settings
	best     BestRun
}

// Open opens the save directory for appName and loads what is there.
// Unreadable entries fall back to defaults; the error reports them.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewMemory(), fmt.Errorf("savedata: open: %w", err)
	}
	s := &Store{m: m, settings: DefaultSettings()}
	return s, s.Load()
}

// NewMemory returns a Store that never touches the disk.
func NewMemory() *Store {
	return &Store{settings: DefaultSettings()}
}

// Persistent reports whether saves reach the disk.
func (s *Store) Persistent() bool {
	return s.m != nil
}

// Load rereads settings and the best run.
func (s *Store) Load() error {
	s.settings = DefaultSettings()
	s.best = BestRun{}
	if s.m == nil {
		return nil
	}
	if err := s.load(settingsObject, globalProp, &s.settings); err != nil {
		s.settings = DefaultSettings()
		return err
	}
	if err := s.load(recordsObject, bestProp, &s.best); err != nil {
		s.best = BestRun{}
		return err
	}
	return nil
}

func (s *Store) load(object, prop string, v any) error {
	if !s.m.ObjectPropExists(object, prop) {
		return nil
	}
	data, err := s.m.LoadObjectProp(object, prop)
	if err != nil {
		return fmt.Errorf("savedata: load %s/%s: %w", object, prop, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("savedata: decode %s/%s: %w", object, prop, err)
	}
	return nil
}

func (s *Store) save(object, prop string, v any) error {
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("savedata: encode %s/%s: %w", object, prop, err)
	}
	if err := s.m.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("savedata: save %s/%s: %w", object, prop, err)
	}
	return nil
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// SaveSettings replaces and persists the settings. Volume is clamped to [0, 1].
func (s *Store) SaveSettings(st Settings) error {
	st.SoundVolume = min(max(st.SoundVolume, 0), 1)
	s.settings = st
	return s.save(settingsObject, globalProp, st)
}

// Best returns the personal best. A zero Score means none yet.
func (s *Store) Best() BestRun {
	return s.best
}

// RecordRun stores run as the personal best if it beats the current one.
func (s *Store) RecordRun(run BestRun) (bool, error) {
	if run.Score <= s.best.Score {
		return false, nil
	}
	s.best = run
	return true, s.save(recordsObject, bestProp, run)
}
