// Package audio renders short generated sound clips and defines the sinks
// the simulation plays them through. Device output lives in speakerout.
package audio

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/nairan/config"
)

// Clip identifies a sound in a Bank.
type Clip int

func (c Clip) String() string { return fmt.Sprintf("clip%d", int(c)) }

// Sink accepts fire-and-forget play requests.
type Sink interface {
	Play(c Clip)
}

// Bank holds pre-rendered clips.
type Bank struct {
	rate    beep.SampleRate
	buffers []*beep.Buffer
	steps   []Clip
}

// NewBank renders the step pool described by cfg.
func NewBank(cfg *config.AudioConfig) *Bank {
	rate := beep.SampleRate(cfg.SampleRate)
	b := &Bank{rate: rate}
	length := time.Duration(cfg.StepLength * float64(time.Second))
	for i := 0; i < cfg.StepClips; i++ {
		b.steps = append(b.steps, b.add(newStepGenerator(rate, length, uint64(i))))
	}
	return b
}

func (b *Bank) add(s beep.Streamer) Clip {
	buf := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	b.buffers = append(b.buffers, buf)
	return Clip(len(b.buffers) - 1)
}

// Steps returns the footstep pool.
func (b *Bank) Steps() []Clip { return b.steps }

// SampleRate returns the rate all clips were rendered at.
func (b *Bank) SampleRate() beep.SampleRate { return b.rate }

// Len returns the clip length in samples, or 0 for an unknown clip.
func (b *Bank) Len(c Clip) int {
	if int(c) < 0 || int(c) >= len(b.buffers) {
		return 0
	}
	return b.buffers[c].Len()
}

// Streamer returns a fresh streamer over a clip, or nil for an unknown clip.
func (b *Bank) Streamer(c Clip) beep.Streamer {
	if int(c) < 0 || int(c) >= len(b.buffers) {
		return nil
	}
	buf := b.buffers[c]
	return buf.Streamer(0, buf.Len())
}

// Pick returns a uniformly random clip from pool.
func Pick(rng *rand.Rand, pool []Clip) (Clip, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	return pool[rng.IntN(len(pool))], true
}

// Recorder is a Sink that remembers what was played.
type Recorder struct {
	Clips []Clip
}

func (r *Recorder) Play(c Clip) { r.Clips = append(r.Clips, c) }

// Discard is a Sink that drops every request.
var Discard Sink = discard{}

type discard struct{}

func (discard) Play(Clip) {}
