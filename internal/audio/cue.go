package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

// Cue is a named sound effect.
type Cue int

const (
	CueStrike Cue = iota // A meteor hit the player
	CueShot              // The gun fired
	CueBlast             // A bullet destroyed a meteor
	CuePickup            // A gun or secret box was collected
	CueRumble            // The ground rose
	CueGameOver
)

// String returns the name of the cue.
func (c Cue) String() string {
	switch c {
	case CueStrike:
		return "strike"
	case CueShot:
		return "shot"
	case CueBlast:
		return "blast"
	case CuePickup:
		return "pickup"
	case CueRumble:
		return "rumble"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Streamer synthesizes the cue at the given rate. The result is finite.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueStrike:
		return volume(beep.Mix(
			shaped(220, 90, 250*time.Millisecond, WaveSquare, rate),
			volume(shaped(0, 0, 120*time.Millisecond, WaveNoise, rate), 0.5),
		), 0.5)
	case CueShot:
		return volume(shaped(1400, 700, 60*time.Millisecond, WaveSquare, rate), 0.25)
	case CueBlast:
		return volume(shaped(0, 0, 180*time.Millisecond, WaveNoise, rate), 0.4)
	case CuePickup:
		return volume(beep.Seq(
			shaped(988, 988, 70*time.Millisecond, WaveSine, rate),
			shaped(1319, 1319, 110*time.Millisecond, WaveSine, rate),
		), 0.5)
	case CueRumble:
		return volume(shaped(60, 40, 300*time.Millisecond, WaveSine, rate), 0.6)
	case CueGameOver:
		return volume(beep.Seq(
			shaped(440, 440, 150*time.Millisecond, WaveSquare, rate),
			shaped(330, 330, 150*time.Millisecond, WaveSquare, rate),
			shaped(220, 110, 400*time.Millisecond, WaveSquare, rate),
		), 0.4)
	default:
		return nil
	}
}

// Player plays cues. Implementations must not block the game loop.
type Player interface {
	Play(Cue)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// CueFor maps a session event to its cue.
func CueFor(ev meteor.Event) (Cue, bool) {
	switch e := ev.(type) {
	case meteor.StrikesChanged:
		return CueStrike, true
	case meteor.BulletFired:
		return CueShot, true
	case meteor.EntityDestroyed:
		switch {
		case e.Kind == meteor.KindMeteor && e.Reason == meteor.ReasonShot:
			return CueBlast, true
		case e.Reason == meteor.ReasonCollected:
			return CuePickup, true
		}
	case meteor.GroundRaised:
		return CueRumble, true
	case meteor.SessionEnded:
		return CueGameOver, true
	}
	return 0, false
}

// Listen returns a session listener that plays the cue of every event.
func Listen(p Player) meteor.Listener {
	return func(ev meteor.Event) {
		if c, ok := CueFor(ev); ok {
			p.Play(c)
		}
	}
}
