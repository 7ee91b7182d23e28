// Package telemetry records simulation counters and per-frame traces.
//
// Both Metrics and TraceWriter are nil-safe: a nil value records nothing,
// so callers never need to check whether telemetry is enabled.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "platformer"

// Metrics holds the Prometheus collectors of one session. Collectors live
// in a private registry so several sessions can run in one process.
type Metrics struct {
	reg *prometheus.Registry

	frames      prometheus.Counter
	substeps    prometheus.Counter
	rebuilds    prometheus.Counter
	deaths      prometheus.Counter
	advances    prometheus.Counter
	screenMoves prometheus.Counter
	wraps       prometheus.Counter
	candidates  prometheus.Gauge
	level       prometheus.Gauge
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

// NewMetrics creates and registers the session collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg:         prometheus.NewRegistry(),
		frames:      counter("frames_total", "Rendered frames simulated."),
		substeps:    counter("substeps_total", "Collision substeps simulated."),
		rebuilds:    counter("candidate_rebuilds_total", "Times the collision candidate cache was rebuilt."),
		deaths:      counter("deaths_total", "Times the player died."),
		advances:    counter("advances_total", "Levels completed."),
		screenMoves: counter("screen_moves_total", "Sub-screen transitions."),
		wraps:       counter("wraps_total", "Wrap-around teleports."),
		candidates:  gauge("candidates", "Tiles in the current collision candidate set."),
		level:       gauge("level", "Index of the level being played."),
	}
	m.reg.MustRegister(m.frames, m.substeps, m.rebuilds, m.deaths, m.advances,
		m.screenMoves, m.wraps, m.candidates, m.level)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Frame counts one rendered frame.
func (m *Metrics) Frame() {
	if m != nil {
		m.frames.Inc()
	}
}

// Substep counts one substep and records the candidate set size.
func (m *Metrics) Substep(candidates int) {
	if m != nil {
		m.substeps.Inc()
		m.candidates.Set(float64(candidates))
	}
}

// Rebuild counts a candidate cache rebuild.
func (m *Metrics) Rebuild() {
	if m != nil {
		m.rebuilds.Inc()
	}
}

// Death counts a player death.
func (m *Metrics) Death() {
	if m != nil {
		m.deaths.Inc()
	}
}

// Advance counts a completed level.
func (m *Metrics) Advance() {
	if m != nil {
		m.advances.Inc()
	}
}

// ScreenMove counts a sub-screen transition.
func (m *Metrics) ScreenMove() {
	if m != nil {
		m.screenMoves.Inc()
	}
}

// Wrap counts a wrap-around.
func (m *Metrics) Wrap() {
	if m != nil {
		m.wraps.Inc()
	}
}

// Level records the level being played.
func (m *Metrics) Level(i int) {
	if m != nil {
		m.level.Set(float64(i))
	}
}

// WriteTextfile writes the current values in the Prometheus text format,
// suitable for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("telemetry: writing metrics: %w", err)
	}
	return nil
}
