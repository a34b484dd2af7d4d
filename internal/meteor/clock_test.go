package meteor

import (
	"testing"
	"time"
)

func TestSpawnTimerAdvance(t *testing.T) {
	tests := []struct {
		name        string
		interval    time.Duration
		steps       []time.Duration
		fired       int
		wantElapsed time.Duration
	}{
		{"not due", 2 * time.Second, []time.Duration{1999 * time.Millisecond}, 0, 1999 * time.Millisecond},
		{"exactly due", 2 * time.Second, []time.Duration{2 * time.Second}, 1, 0},
		{"remainder carried", 2 * time.Second, []time.Duration{5 * time.Second}, 2, time.Second},
		{"remainder completes next period", 2 * time.Second, []time.Duration{5 * time.Second, time.Second}, 3, 0},
		{"many small frames", time.Second, []time.Duration{
			300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond,
		}, 1, 200 * time.Millisecond},
		{"zero step", time.Second, []time.Duration{0}, 0, 0},
		{"negative step", time.Second, []time.Duration{-time.Second}, 0, 0},
		{"zero interval", 0, []time.Duration{time.Second}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewSpawnTimer(tt.interval)
			fired := 0
			for _, dt := range tt.steps {
				fired += timer.Advance(dt)
			}
			if fired != tt.fired {
				t.Errorf("fired %d times, expected %d", fired, tt.fired)
			}
			if timer.Elapsed != tt.wantElapsed {
				t.Errorf("Elapsed = %v, expected %v", timer.Elapsed, tt.wantElapsed)
			}
		})
	}
}

func TestSpawnTimerInactive(t *testing.T) {
	timer := NewSpawnTimer(time.Second)
	timer.Active = false

	if n := timer.Advance(5 * time.Second); n != 0 {
		t.Errorf("inactive timer fired %d times", n)
	}

	timer.Restart()
	if n := timer.Advance(time.Second); n != 1 {
		t.Errorf("restarted timer fired %d times, expected 1", n)
	}
}

func TestSpawnTimerRemaining(t *testing.T) {
	timer := NewSpawnTimer(time.Second)
	timer.Advance(300 * time.Millisecond)

	if got := timer.Remaining(); got != 700*time.Millisecond {
		t.Errorf("Remaining() = %v, expected 700ms", got)
	}
}

func TestClock(t *testing.T) {
	var c Clock
	c.Advance(time.Second)
	c.Advance(-time.Second)
	c.Advance(500 * time.Millisecond)

	if c.Now() != 1500*time.Millisecond {
		t.Errorf("Now() = %v, expected 1.5s", c.Now())
	}

	c.Reset()
	if c.Now() != 0 {
		t.Errorf("Now() = %v after reset", c.Now())
	}
}
