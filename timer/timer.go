// Package timer provides countdown timers advanced by elapsed frame time.
package timer

import (
	"fmt"
	"time"
)

// Mode selects whether a timer stops or restarts when it reaches its duration.
type Mode uint8

const (
	Once      Mode = iota // latches finished until Reset
	Repeating             // wraps, carrying the remainder into the next cycle
)

func (m Mode) String() string {
	switch m {
	case Once:
		return "once"
	case Repeating:
		return "repeating"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Timer counts elapsed time up to a fixed duration.
//
// Finished reports whether the timer has reached its duration. For a Once
// timer it stays true until Reset. For a Repeating timer it is true only on
// ticks where at least one cycle completed. JustFinished is the single-tick
// edge in both modes.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     Mode
	finished bool
	times    uint32
}

// New creates a timer. A negative duration is a programming error and panics.
func New(d time.Duration, mode Mode) Timer {
	if d < 0 {
		panic(fmt.Sprintf("timer: negative duration %s", d))
	}
	return Timer{duration: d, mode: mode}
}

// FromSeconds creates a timer from a duration in seconds.
func FromSeconds(seconds float64, mode Mode) Timer {
	return New(time.Duration(seconds*float64(time.Second)), mode)
}

// Finished creates a Once timer that already reports Finished, without the
// JustFinished edge.
func Finished(d time.Duration) Timer {
	t := New(d, Once)
	t.elapsed = d
	t.finished = true
	return t
}

// Tick advances the timer by dt and returns it for chaining.
func (t *Timer) Tick(dt time.Duration) *Timer {
	if dt < 0 {
		panic(fmt.Sprintf("timer: negative tick %s", dt))
	}
	if t.mode == Once && t.finished {
		t.times = 0
		return t
	}

	t.elapsed += dt
	t.finished = t.elapsed >= t.duration
	if !t.finished {
		t.times = 0
		return t
	}

	if t.mode == Repeating {
		if t.duration == 0 {
			t.times = 1
			t.elapsed = 0
			return t
		}
		t.times = uint32(t.elapsed / t.duration)
		t.elapsed %= t.duration
		return t
	}

	t.times = 1
	t.elapsed = t.duration
	return t
}

// Finished reports whether the timer has reached its duration (see Timer).
func (t *Timer) Finished() bool { return t.finished }

// JustFinished reports whether the timer reached its duration during the last Tick.
func (t *Timer) JustFinished() bool { return t.times > 0 }

// TimesFinishedThisTick returns how many cycles completed during the last Tick.
// It is at most 1 for Once timers.
func (t *Timer) TimesFinishedThisTick() uint32 { return t.times }

// Reset rewinds the timer to zero elapsed time and clears both finished signals.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}

// Elapsed returns the time accumulated in the current cycle.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration { return t.duration }

// Remaining returns the time left in the current cycle.
func (t *Timer) Remaining() time.Duration { return t.duration - t.elapsed }

// Mode returns the timer mode.
func (t *Timer) Mode() Mode { return t.mode }

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration == 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}
