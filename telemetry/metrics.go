package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports simulation counters to Prometheus. Labels are bounded to
// event and phase names. A nil *Metrics is a no-op.
type Metrics struct {
	registry     *prometheus.Registry
	events       *prometheus.CounterVec
	tickDuration prometheus.Histogram
	phaseSeconds *prometheus.CounterVec
	projectiles  prometheus.Gauge
	paused       prometheus.Gauge
}

// NewMetrics registers the simulation metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nairan_events_total",
			Help: "Simulation events by type",
		}, []string{"type"}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nairan_tick_duration_seconds",
			Help:    "Wall time spent in one simulation step",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
		phaseSeconds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nairan_phase_seconds_total",
			Help: "Cumulative wall time per simulation phase",
		}, []string{"phase"}),
		projectiles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nairan_projectiles",
			Help: "Live projectiles",
		}),
		paused: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nairan_paused",
			Help: "1 while the simulation is paused",
		}),
	}
}

// Record implements Recorder.
func (m *Metrics) Record(ev Event) {
	if m == nil || ev.Count <= 0 {
		return
	}
	m.events.WithLabelValues(ev.Type.String()).Add(float64(ev.Count))
}

// ObserveTick records one step's wall time.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
}

// ObservePerf adds the window's average phase times.
func (m *Metrics) ObservePerf(s PerfStats) {
	if m == nil {
		return
	}
	for phase, d := range s.PhaseAvg {
		m.phaseSeconds.WithLabelValues(phase).Add(d.Seconds())
	}
}

// SetProjectiles sets the live projectile gauge.
func (m *Metrics) SetProjectiles(n int) {
	if m == nil {
		return
	}
	m.projectiles.Set(float64(n))
}

// SetPaused sets the paused gauge.
func (m *Metrics) SetPaused(paused bool) {
	if m == nil {
		return
	}
	v := 0.0
	if paused {
		v = 1
	}
	m.paused.Set(v)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
