package meteor

import "time"

// DifficultyController shrinks the meteor spawn interval over time.
type DifficultyController struct {
	cfg      DifficultyConfig
	interval time.Duration
	cadence  SpawnTimer
}

// NewDifficultyController starts at the configured initial interval.
func NewDifficultyController(cfg DifficultyConfig) *DifficultyController {
	d := &DifficultyController{cfg: cfg}
	d.Reset()
	return d
}

// Interval returns the current meteor spawn interval.
func (d *DifficultyController) Interval() time.Duration {
	return d.interval
}

// Escalate applies the configured number of decrements, each clamped at the floor.
// The shipped tuning applies the step twice per escalation.
func (d *DifficultyController) Escalate() {
	for range d.cfg.Applications {
		d.interval = max(d.cfg.MinInterval, d.interval-d.cfg.Step)
	}
}

// Advance runs the escalation cadence and returns how many escalations happened.
func (d *DifficultyController) Advance(dt time.Duration) int {
	if !d.cfg.Enabled {
		return 0
	}
	n := d.cadence.Advance(dt)
	for range n {
		d.Escalate()
	}
	return n
}

// Reset restores the initial interval and restarts the cadence.
func (d *DifficultyController) Reset() {
	d.interval = d.cfg.InitialInterval
	d.cadence = NewSpawnTimer(d.cfg.Cadence)
}
