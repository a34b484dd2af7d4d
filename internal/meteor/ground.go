package meteor

import "time"

// Ground is the floor the player walks on. Every Wait it rises by the next
// entry of Pattern times StepHeight, and it never rises above Ceiling.
type Ground struct {
	cfg     GroundConfig
	top     float64
	next    int
	cadence SpawnTimer
}

// NewGround places the ground at the bottom of a world of the given height.
func NewGround(cfg GroundConfig, worldHeight float64) Ground {
	return Ground{
		cfg:     cfg,
		top:     worldHeight - cfg.Thickness,
		cadence: NewSpawnTimer(cfg.Wait),
	}
}

// Top returns the Y coordinate of the walking surface.
func (g *Ground) Top() float64 {
	return g.top
}

// Advance returns how many rises came due during dt.
func (g *Ground) Advance(dt time.Duration) int {
	return g.cadence.Advance(dt)
}

// Raise performs one rise and returns the steps taken and the distance moved.
func (g *Ground) Raise() (steps int, moved float64) {
	if len(g.cfg.Pattern) == 0 {
		return 0, 0
	}
	steps = g.cfg.Pattern[g.next]
	g.next = (g.next + 1) % len(g.cfg.Pattern)

	target := max(g.cfg.Ceiling, g.top-float64(steps)*g.cfg.StepHeight)
	moved = g.top - target
	if moved < 0 {
		moved = 0
	}
	g.top -= moved
	return steps, moved
}
