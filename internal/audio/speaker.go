package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays cues on the default output device through one mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	muted       bool
	gain        float64
	initialized bool
}

// NewSpeaker creates an uninitialized speaker.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}, gain: 1}
}

// Initialize opens the output device and starts the mixer.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open output device: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// SetMuted silences or restores playback of new cues.
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

// SetVolume sets the gain applied to new cues, clamped to [0, 1].
func (s *Speaker) SetVolume(gain float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = max(0, min(1, gain))
}

// Play queues a cue. It does nothing until Initialize succeeded.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.muted {
		return
	}
	st := c.Streamer(sampleRate)
	if st == nil {
		return
	}
	if s.gain < 1 {
		st = volume(st, s.gain)
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops every playing cue.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
