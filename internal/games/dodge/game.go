// Package dodge adapts the meteor simulation to the arcade platform: it
// drives a session at the platform's tick rate, runs collision detection and
// draws the world into a character screen.
package dodge

import (
	"time"

	"github.com/vovakirdan/meteor-arcade/internal/audio"
	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/meteor"
	"github.com/vovakirdan/meteor-arcade/internal/physics"
	"github.com/vovakirdan/meteor-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "meteor"

// Game implements registry.Game for Dodge the Meteor.
type Game struct {
	session  *meteor.Session
	detector *physics.Detector
	runtime  core.RuntimeConfig
	cfg      config.MeteorConfig
	dt       time.Duration // Logical time per Step
	paused   bool
	preset   config.DifficultyPreset
	override *config.DifficultyPreset // Per-game preset set by SetDifficulty
	frame    int                      // Render counter for blinking

	listeners []meteor.Listener
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	cuePlayer        audio.Player = audio.Nop{}
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// loaded ramp.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetCuePlayer routes sound cues of new games to p.
func SetCuePlayer(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	cuePlayer = p
}

// New creates a game. Reset must be called before Step.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dodge the Meteor"
}

// Subscribe routes the events of this game's current and future sessions
// to l.
func (g *Game) Subscribe(l meteor.Listener) {
	g.listeners = append(g.listeners, l)
	if g.session != nil {
		g.session.Subscribe(l)
	}
}

// Reset starts a new run. A restart with the same seed continues the
// session's random stream instead of replaying the previous run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(tickRate)
	g.paused = false
	g.frame = 0

	if g.session != nil && g.runtime.Seed == runtime.Seed {
		g.runtime = runtime
		g.session.Reset()
		g.detector.Reset()
		return
	}
	g.runtime = runtime

	cfg, err := config.LoadMeteor(configPath)
	if err != nil {
		cfg = config.DefaultMeteorConfig()
	}
	preset := difficultyPreset
	if g.override != nil {
		preset = *g.override
	}
	if preset != "" {
		config.ApplyMeteorPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.preset = preset

	sim := cfg.Sim()
	s, err := meteor.NewSession(sim, runtime.Seed)
	if err != nil {
		s = meteor.MustNewSession(meteor.DefaultConfig(), runtime.Seed)
	}
	s.Subscribe(audio.Listen(cuePlayer))
	for _, l := range g.listeners {
		s.Subscribe(l)
	}

	g.session = s
	g.detector = physics.NewDetector(s.Config().World)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.State() == meteor.StateEnded {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionTap) {
		g.session.OnPointerDown()
	}
	g.session.Tick(g.dt)
	g.detector.Step(g.session)

	return core.StepResult{State: g.State()}
}

// State returns the current game state. Score is survival time in milliseconds.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	score := g.session.Elapsed()
	over := g.session.State() == meteor.StateEnded
	if over {
		score = g.session.FinalScore()
	}
	return core.GameState{
		Score:    int(score / time.Millisecond),
		GameOver: over,
		Paused:   g.paused,
	}
}

// Session exposes the running session to frontends that draw it themselves.
func (g *Game) Session() *meteor.Session {
	return g.session
}

// SetDifficulty overrides the package preset for this game only. The next
// Reset builds a new session.
func (g *Game) SetDifficulty(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	g.override = &p
	g.session = nil
}

// Difficulty names the preset the session was built with. An empty preset
// means the loaded config was used as is.
func (g *Game) Difficulty() string {
	if g.preset == "" {
		return "config"
	}
	return string(g.preset)
}

// Config returns the tuning the current session was built from.
func (g *Game) Config() config.MeteorConfig {
	return g.cfg
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
