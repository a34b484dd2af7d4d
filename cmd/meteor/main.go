// meteor is Dodge the Meteor for the terminal: walk left and right under a
// shower of meteors, grab the gun, and survive as long as you can.
//
// Usage:
//
//	meteor play             - Play right away
//	meteor menu             - Title screen with difficulty picker and scores
//	meteor serve            - Start SSH server for remote play
//	meteor scores           - Show the best (or latest) runs
//	meteor sim              - Run a headless session and log its events
//	meteor config           - Print the effective tuning as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/meteor.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meteor",
	Short: "Dodge the Meteor - survive the meteor shower in your terminal",
	Long: `Dodge the Meteor is an arcade survival game. Your character walks on
its own; tap to turn around. Three meteor strikes end the run. Grab the
gun to shoot meteors down, and mind the ground: it keeps rising.

Available commands:
  play     - Play right away
  menu     - Title screen with difficulty picker and scores
  serve    - Start SSH server for remote play
  scores   - View the run history
  sim      - Headless simulation for tuning and replays
  config   - Print the effective tuning

Examples:
  meteor play
  meteor play --difficulty hard --sound
  meteor menu
  meteor serve --ssh :2222
  meteor sim --seed 42 --duration 60s
  meteor config --difficulty easy > easy.yaml`,
	PersistentPreRunE: applyGameFlags,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/meteor.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applyGameFlags validates the tuning flags once and hands them to the game.
func applyGameFlags(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := loadTuning(); err != nil {
		return err
	}

	dodge.SetConfigPath(flagConfig)
	dodge.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadTuning returns the config the game will run with.
func loadTuning() (config.MeteorConfig, error) {
	cfg, err := config.LoadMeteor(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		config.ApplyMeteorPreset(&cfg, preset)
	}
	return cfg, nil
}
