package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
	"github.com/vovakirdan/meteor-arcade/internal/physics"
)

var (
	flagSimDuration time.Duration
	flagSimTapEvery time.Duration
	flagSimVerbose  bool
	flagSimSnapshot bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session and log what happens",
	Long: `Drive a session without a screen at the --fps rate until the player
strikes out or --duration of game time has passed. The player turns
around every --tap-every (0 never taps). Same seed, rate and flags
always give the same run.

Examples:
  meteor sim --seed 42
  meteor sim --seed 42 --tap-every 700ms --verbose
  meteor sim --difficulty hard --duration 2m --snapshot > final.yaml`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 5*time.Minute, "Longest game time to simulate")
	simCmd.Flags().DurationVar(&flagSimTapEvery, "tap-every", 0, "Tap interval of the autopilot (0 disables)")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log every entity event")
	simCmd.Flags().BoolVar(&flagSimSnapshot, "snapshot", false, "Print the final state as YAML on stdout")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadTuning()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := meteor.NewSession(cfg.Sim(), seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}
	detector := physics.NewDetector(cfg.Sim().World)

	session.Subscribe(func(ev meteor.Event) {
		at := session.Elapsed().Round(time.Millisecond)
		switch ev := ev.(type) {
		case meteor.EntityCreated:
			logger.Debug("spawned", "at", at, "kind", ev.Kind, "id", ev.ID, "x", int(ev.X))
		case meteor.EntityDestroyed:
			logger.Debug("destroyed", "at", at, "kind", ev.Kind, "id", ev.ID, "reason", ev.Reason)
		case meteor.BulletFired:
			logger.Debug("fired", "at", at, "id", ev.ID)
		case meteor.StrikesChanged:
			logger.Warn("strike", "at", at, "strikes", ev.Strikes)
		case meteor.PowerUpChanged:
			logger.Info("power-up", "at", at, "active", ev.Active, "remaining", ev.Remaining)
		case meteor.GroundRaised:
			logger.Info("ground raised", "at", at, "steps", ev.Steps, "ground_y", int(ev.GroundY))
		case meteor.DifficultyChanged:
			logger.Info("faster", "at", at, "interval", ev.Interval)
		case meteor.SessionEnded:
			logger.Info("game over", "score", ev.FinalScore)
		}
	})

	dt := time.Second / time.Duration(flagFPS)
	var sinceTap time.Duration

	logger.Info("starting", "seed", seed, "fps", flagFPS, "difficulty", presetName())
	for session.State() == meteor.StatePlaying && session.Elapsed() < flagSimDuration {
		if flagSimTapEvery > 0 {
			sinceTap += dt
			if sinceTap >= flagSimTapEvery {
				sinceTap -= flagSimTapEvery
				session.OnPointerDown()
			}
		}
		session.Tick(dt)
		detector.Step(session)
	}

	score := session.Elapsed()
	if session.State() == meteor.StateEnded {
		score = session.FinalScore()
	}
	st := session.Stats()
	logger.Info("finished",
		"state", session.State(),
		"score", score.Round(time.Millisecond),
		"ticks", session.Ticks(),
		"spawned", st.MeteorsSpawned,
		"shot", st.MeteorsShot,
		"dodged", st.MeteorsDodged,
		"strikes", st.Strikes,
	)

	if flagSimSnapshot {
		out, err := yaml.Marshal(session.Snapshot())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}
	fmt.Printf("%.3f\n", score.Seconds())
}

func presetName() string {
	if flagDifficulty == "" {
		return "config"
	}
	return flagDifficulty
}
