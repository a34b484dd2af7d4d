package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/platform/tui"
	"github.com/vovakirdan/meteor-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Title screen with difficulty picker and run history",
	Long: `Start the interactive title screen.

Controls:
  Up/Down     - Navigate
  Left/Right  - Change difficulty
  Enter/Space - Select
  Tab         - Run history
  Q/Esc       - Quit

Leaving a paused or finished game with Esc returns here.`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	stopSound := startSound()
	defer stopSound()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	preset := flagDifficulty

	for {
		result, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			return
		}
		cfg = result.Config

		switch result.Choice {
		case tui.ChoiceScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
				return
			}
			if !goBack {
				return
			}

		case tui.ChoicePlay:
			preset = string(result.Difficulty)
			dodge.SetDifficultyPreset(preset)

			game, err := registry.Create(dodge.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
				return
			}
			backToMenu, err := tui.Run(game, store, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}
			if !backToMenu {
				return
			}

		default:
			return
		}
	}
}
