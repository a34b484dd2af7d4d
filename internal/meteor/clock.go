package meteor

import "time"

// Clock is the session's logical time source. It only moves when the host
// loop advances it, so replays with the same dt sequence see the same times.
type Clock struct {
	now time.Duration
}

// Advance moves the clock forward. Negative steps are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

// Now returns the time elapsed since the last reset.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.now = 0
}

// SpawnTimer is a periodic elapsed-time accumulator.
type SpawnTimer struct {
	Interval time.Duration
	Elapsed  time.Duration
	Active   bool
}

// NewSpawnTimer returns an active timer with the given period.
func NewSpawnTimer(interval time.Duration) SpawnTimer {
	return SpawnTimer{Interval: interval, Active: true}
}

// Advance adds dt and returns how many periods completed. The remainder past
// the last completed period is kept, so a long frame fires the timer as many
// times as a run of short frames covering the same span would.
func (t *SpawnTimer) Advance(dt time.Duration) int {
	if !t.Active || t.Interval <= 0 || dt <= 0 {
		return 0
	}
	t.Elapsed += dt
	fired := 0
	for t.Elapsed >= t.Interval {
		t.Elapsed -= t.Interval
		fired++
	}
	return fired
}

// Remaining returns the time until the next firing.
func (t SpawnTimer) Remaining() time.Duration {
	if t.Elapsed >= t.Interval {
		return 0
	}
	return t.Interval - t.Elapsed
}

// Restart clears the accumulated time and activates the timer.
func (t *SpawnTimer) Restart() {
	t.Elapsed = 0
	t.Active = true
}
