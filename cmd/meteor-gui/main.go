// meteor-gui is the desktop window for Dodge the Meteor.
//
// Keys: Space/Enter/Click/Touch turn around and shoot, P/Esc pause,
// R restarts after game over, D changes difficulty on the game over screen,
// M toggles sound, -/= change the volume, F toggles fullscreen, Q quits.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteor-arcade/internal/audio"
	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/platform/gui"
	"github.com/vovakirdan/meteor-arcade/internal/savedata"
)

var (
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagScale      float64
	flagMute       bool
)

var rootCmd = &cobra.Command{
	Use:          "meteor-gui",
	Short:        "Dodge the Meteor in a desktop window",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (default: the saved one)")
	rootCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Start without sound")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "meteor-gui",
	})

	if flagFPS <= 0 || flagScale <= 0 {
		return fmt.Errorf("--fps and --scale must be positive")
	}
	if _, err := config.LoadMeteor(flagConfig); err != nil {
		return err
	}
	dodge.SetConfigPath(flagConfig)

	store, err := savedata.Open(savedata.AppName)
	if err != nil {
		logger.Warn("settings will not be saved", "error", err)
	}

	settings := store.Settings()
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		settings.Difficulty = flagDifficulty
	}
	if flagMute {
		settings.SoundEnabled = false
	}
	if err := store.SaveSettings(settings); err != nil {
		logger.Warn("could not save settings", "error", err)
	}

	var mixer gui.Mixer
	sp := audio.NewSpeaker()
	if err := sp.Initialize(); err != nil {
		logger.Warn("no sound", "error", err)
	} else {
		defer sp.Close()
		dodge.SetCuePlayer(sp)
		mixer = sp
	}

	game := dodge.New()
	game.SetDifficulty(settings.Difficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}

	app := gui.NewApp(game, store, mixer, runtime, logger)
	logger.Info("starting", "seed", seed, "difficulty", game.Difficulty(), "saved", store.Persistent())
	return gui.Run(app, game.Title(), flagScale)
}
