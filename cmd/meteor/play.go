package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/meteor-arcade/internal/audio"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/platform/tui"
	"github.com/vovakirdan/meteor-arcade/internal/registry"
	"github.com/vovakirdan/meteor-arcade/internal/storage"
)

var flagSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Dodge the Meteor",
	Long: `Start a run right away.

Controls:
  Space/Enter/Click - Turn around (and shoot while holding the gun)
  P                 - Pause
  Esc/B             - Pause, or back to the menu when paused or over
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower first interval, gentler ramp
  normal - The tuning as loaded
  hard   - Faster first interval, steeper ramp, lower floor
  fixed  - No ramp, meteors keep the initial interval

Examples:
  meteor play
  meteor play --difficulty easy
  meteor play --seed 42 --fps 30
  meteor play --config ./my-meteor.yaml --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects on the default audio device")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects on the default audio device")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history. The game still runs without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// startSound routes cues to the speaker when --sound is set.
// The returned func releases the device.
func startSound() func() {
	if !flagSound {
		return func() {}
	}
	sp := audio.NewSpeaker()
	if err := sp.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return func() {}
	}
	dodge.SetCuePlayer(sp)
	return sp.Close
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := registry.Create(dodge.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	stopSound := startSound()
	store := openStore()

	_, runErr := tui.Run(game, store, terminalConfig())

	if store != nil {
		store.Close()
	}
	stopSound()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
