// Package telemetry provides per-window gameplay stats, phase timing, CSV
// output and Prometheus metrics.
package telemetry

import "fmt"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventShotFired EventType = iota
	EventShotDropped
	EventFireError
	EventProjectileDespawned
	EventStepSound
	EventEffectStarted
	EventEffectStopped
	EventAttachmentOrphaned
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	"shot_fired",
	"shot_dropped",
	"fire_error",
	"projectile_despawned",
	"step_sound",
	"effect_started",
	"effect_stopped",
	"attachment_orphaned",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is a batch of same-typed occurrences within one tick.
type Event struct {
	Type  EventType
	Tick  int32
	Count int
}

// NewEvent creates an event. Zero counts are legal and ignored by recorders.
func NewEvent(tick int32, typ EventType, count int) Event {
	return Event{Type: typ, Tick: tick, Count: count}
}

// Recorder accepts telemetry events.
type Recorder interface {
	Record(ev Event)
}

// Recorders fans an event out to every non-nil recorder.
type Recorders []Recorder

// Record implements Recorder.
func (rs Recorders) Record(ev Event) {
	if ev.Count <= 0 {
		return
	}
	for _, r := range rs {
		if r != nil {
			r.Record(ev)
		}
	}
}
