// Package gui is the desktop frontend: an ebiten window that drives the
// dodge game at a fixed tick rate, draws the world with vector shapes and
// keeps settings and the personal best through savedata.
package gui

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/savedata"
)

// Mixer is the part of the audio output the settings control.
type Mixer interface {
	SetMuted(muted bool)
	SetVolume(gain float64)
}

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// App implements ebiten.Game.
type App struct {
	game     *dodge.Game
	store    *savedata.Store
	mixer    Mixer
	logger   *log.Logger
	runtime  core.RuntimeConfig
	settings savedata.Settings
	face     text.Face
	recorded bool
	newBest  bool
}

// NewApp resets game and wraps it for ebiten. mixer may be nil.
func NewApp(game *dodge.Game, store *savedata.Store, mixer Mixer, runtime core.RuntimeConfig, logger *log.Logger) *App {
	if store == nil {
		store = savedata.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	a := &App{
		game:     game,
		store:    store,
		mixer:    mixer,
		logger:   logger,
		runtime:  runtime,
		settings: store.Settings(),
		face:     text.NewGoXFace(basicfont.Face7x13),
	}
	a.applySound()
	game.Reset(runtime)
	return a
}

// Update runs one tick. ebiten calls it TickRate times per second.
func (a *App) Update() error {
	in := readInput()
	over := a.game.State().GameOver

	switch {
	case in.quit:
		return ebiten.Termination
	case in.toggleFullscreen:
		a.settings.Fullscreen = !a.settings.Fullscreen
		ebiten.SetFullscreen(a.settings.Fullscreen)
		a.saveSettings()
	case in.toggleSound:
		a.settings.SoundEnabled = !a.settings.SoundEnabled
		a.applySound()
		a.saveSettings()
	case in.volume != 0:
		a.settings.SoundVolume = max(0, min(1, a.settings.SoundVolume+in.volume))
		a.applySound()
		a.saveSettings()
	case in.cycleDifficulty && over:
		a.settings.Difficulty = string(nextPreset(a.settings.Difficulty))
		a.saveSettings()
	}

	if over && (in.frame.Has(core.ActionRestart) || in.frame.Has(core.ActionTap)) {
		a.restart()
		return nil
	}

	a.game.Step(in.frame)
	if a.game.State().GameOver && !a.recorded {
		a.recordRun()
	}
	return nil
}

// Draw renders the current frame.
func (a *App) Draw(screen *ebiten.Image) {
	a.game.NextFrame()
	a.drawWorld(screen)
	a.drawHUD(screen)
}

// Layout keeps the logical screen at the world size; ebiten scales it to the window.
func (a *App) Layout(_, _ int) (int, int) {
	w := a.game.Config().World
	return int(w.Width), int(w.Height)
}

// Settings returns the preferences in effect.
func (a *App) Settings() savedata.Settings {
	return a.settings
}

// restart begins a new run, applying a difficulty picked on the game over screen.
func (a *App) restart() {
	if a.game.Difficulty() != a.settings.Difficulty {
		a.game.SetDifficulty(a.settings.Difficulty)
	}
	a.runtime.Seed = time.Now().UnixNano()
	a.game.Reset(a.runtime)
	a.recorded = false
	a.newBest = false
	a.logger.Info("restart", "seed", a.runtime.Seed, "difficulty", a.game.Difficulty())
}

func (a *App) recordRun() {
	a.recorded = true
	s := a.game.Session()
	st := s.Stats()

	better, err := a.store.RecordRun(savedata.BestRun{
		Score:       s.FinalScore(),
		Strikes:     st.Strikes,
		MeteorsShot: st.MeteorsShot,
		Seed:        s.Seed(),
		At:          time.Now(),
	})
	if err != nil {
		a.logger.Warn("could not save best run", "error", err)
	}
	a.newBest = better
	a.logger.Info("game over", "score", s.FinalScore().Round(time.Millisecond), "best", better)
}

func (a *App) applySound() {
	if a.mixer == nil {
		return
	}
	a.mixer.SetMuted(!a.settings.SoundEnabled)
	a.mixer.SetVolume(a.settings.SoundVolume)
}

func (a *App) saveSettings() {
	if err := a.store.SaveSettings(a.settings); err != nil {
		a.logger.Warn("could not save settings", "error", err)
	}
	a.settings = a.store.Settings()
}

// nextPreset cycles through the presets after name. Unknown names start over.
func nextPreset(name string) config.DifficultyPreset {
	for i, p := range presets {
		if string(p) == name {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}

// Run opens the window and blocks until it is closed.
func Run(app *App, title string, scale float64) error {
	w, h := app.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(app.settings.Fullscreen)
	ebiten.SetTPS(max(1, app.runtime.TickRate))

	return ebiten.RunGame(app)
}
