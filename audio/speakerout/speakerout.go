// Package speakerout plays audio clips on the system output device. It is
// kept apart from package audio because the speaker backend needs cgo.
package speakerout

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/nairan/audio"
)

// MixerSink mixes played clips into one stream.
type MixerSink struct {
	mu     sync.Mutex
	bank   *audio.Bank
	mixer  beep.Mixer
	volume float64
	played int
}

// NewMixerSink creates a sink over bank at the given linear volume.
func NewMixerSink(bank *audio.Bank, volume float64) *MixerSink {
	return &MixerSink{bank: bank, volume: volume}
}

// Play starts a clip. Unknown clips are ignored.
func (s *MixerSink) Play(c audio.Clip) {
	st := s.bank.Streamer(c)
	if st == nil {
		return
	}
	s.mu.Lock()
	s.mixer.Add(newVolume(st, s.volume))
	s.played++
	s.mu.Unlock()
}

// Stream implements beep.Streamer. It streams silence while no clip is
// playing so the speaker keeps the sink.
func (s *MixerSink) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	n, ok := s.mixer.Stream(samples)
	s.mu.Unlock()
	if !ok {
		n = 0
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (s *MixerSink) Err() error { return nil }

// Active returns the number of clips still playing.
func (s *MixerSink) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}

// Played returns the number of clips started.
func (s *MixerSink) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Start opens the output device and plays the sink on it.
func Start(s *MixerSink) error {
	rate := s.bank.SampleRate()
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(s)
	return nil
}

// math.Log2(0) is -Inf, so zero volume is rendered silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
