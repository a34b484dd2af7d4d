package dodge

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

// HUD is the text every frontend shows over the world.
type HUD struct {
	Left  string // Time and strikes
	Right string // Power-up timer and spawn interval

	// Title and Subtitle are set while an overlay (pause, game over) is up.
	Title    string
	Subtitle string
}

// HUD builds the status text for the current frame.
func (g *Game) HUD() HUD {
	s := g.session
	var h HUD

	elapsed := s.Elapsed()
	if s.State() == meteor.StateEnded {
		elapsed = s.FinalScore()
	}

	limit := s.Config().StrikeLimit
	strikes := strings.Repeat(string(StrikeFull), min(s.Strikes(), limit)) +
		strings.Repeat(string(StrikeEmpty), max(0, limit-s.Strikes()))
	h.Left = fmt.Sprintf(" Time: %.1fs  Strikes: %s ", elapsed.Seconds(), strikes)

	h.Right = fmt.Sprintf(" Every %.2fs ", s.SpawnInterval().Seconds())
	if pu := s.PowerUp(); pu.Active {
		h.Right = fmt.Sprintf(" %s %.1fs ", strings.ToUpper(pu.Kind.String()), pu.Remaining.Seconds()) + h.Right
	}

	switch {
	case s.State() == meteor.StateEnded:
		h.Title = "GAME OVER"
		h.Subtitle = fmt.Sprintf("Score: %ds  |  Press R to restart", int(s.FinalScore()/time.Second))
	case g.paused:
		h.Title = "PAUSED"
		h.Subtitle = "Press P to resume"
	}
	return h
}
