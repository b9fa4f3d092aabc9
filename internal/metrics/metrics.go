package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
)

const namespace = "lineupgen"

// Common metric label keys
const (
	AttrReason = "reason"
	AttrPreset = "preset"
)

// Recorder mirrors search statistics into prometheus collectors on a private
// registry. A nil Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	attempts   prometheus.Counter
	accepted   prometheus.Counter
	rejections *prometheus.CounterVec
	requested  prometheus.Gauge
	generated  prometheus.Gauge
	exhausted  prometheus.Gauge
	duration   prometheus.Gauge
}

// NewRecorder creates a recorder whose collectors carry the preset label
func NewRecorder(preset string) *Recorder {
	labels := prometheus.Labels{AttrPreset: preset}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "attempts_total",
			Help: "Candidate lineups evaluated.", ConstLabels: labels,
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lineups_accepted_total",
			Help: "Candidate lineups accepted into the result set.", ConstLabels: labels,
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rejections_total",
			Help: "Candidate lineups rejected, by reason.", ConstLabels: labels,
		}, []string{AttrReason}),
		requested: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "lineups_requested",
			Help: "Lineups requested for the last run.", ConstLabels: labels,
		}),
		generated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "lineups_generated",
			Help: "Lineups produced by the last run.", ConstLabels: labels,
		}),
		exhausted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "search_exhausted",
			Help: "1 if the last run stopped on the consecutive failure threshold.", ConstLabels: labels,
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help: "Wall time of the last run.", ConstLabels: labels,
		}),
	}

	r.registry.MustRegister(r.attempts, r.accepted, r.rejections, r.requested, r.generated, r.exhausted, r.duration)
	return r
}

// ObserveAttempt counts one evaluated candidate
func (r *Recorder) ObserveAttempt() {
	if r == nil {
		return
	}
	r.attempts.Inc()
}

// ObserveAccepted counts one accepted lineup
func (r *Recorder) ObserveAccepted() {
	if r == nil {
		return
	}
	r.accepted.Inc()
}

// ObserveRejected counts one rejected candidate under its reason
func (r *Recorder) ObserveRejected(reason string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(reason).Inc()
}

// RecordResult sets the per-run gauges from a finished run
func (r *Recorder) RecordResult(result *optimizer.Result) {
	if r == nil || result == nil {
		return
	}
	r.requested.Set(float64(result.Requested))
	r.generated.Set(float64(result.Generated()))
	if result.Exhausted {
		r.exhausted.Set(1)
	} else {
		r.exhausted.Set(0)
	}
	r.duration.Set(result.Elapsed.Seconds())
}

// Registry exposes the recorder's collectors
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the collectors in node_exporter textfile format
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

var _ optimizer.Observer = (*Recorder)(nil)
