package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// stepGenerator renders a short thump: a low sine under filtered noise with
// an exponential decay. The seed varies pitch and grit between clips.
type stepGenerator struct {
	rate     beep.SampleRate
	rng      *rand.Rand
	freq     float64
	phase    float64
	noise    float64
	position int
	total    int
}

func newStepGenerator(rate beep.SampleRate, length time.Duration, seed uint64) *stepGenerator {
	rng := rand.New(rand.NewPCG(0x5eed, seed))
	return &stepGenerator{
		rate:  rate,
		rng:   rng,
		freq:  70 + 12*float64(seed%4) + rng.Float64()*6,
		total: rate.N(length),
	}
}

func (g *stepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.total {
			return i, i > 0
		}

		t := float64(g.position) / float64(g.total)
		decay := math.Exp(-6 * t)

		// One-pole low-pass keeps the noise soft
		g.noise += 0.2 * ((g.rng.Float64()*2 - 1) - g.noise)

		val := decay * (0.7*math.Sin(2*math.Pi*g.phase) + 0.3*g.noise)
		samples[i][0] = val
		samples[i][1] = val

		g.phase += g.freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.position++
	}
	return len(samples), true
}

func (g *stepGenerator) Err() error { return nil }
