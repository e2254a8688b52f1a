package trajectory

import "motiongen/pkg/metrics"

// Recorder exposes a Generator's per-tick planning behavior as Prometheus
// text-format metrics, mirroring the teacher's KlipperMetrics pattern: a
// small struct of already-constructed metric objects, registered once, and
// updated by simple setter/increment calls on the hot path.
type Recorder struct {
	registry *metrics.Registry

	SyncedDuration  *metrics.Gauge
	CalculationTime *metrics.Histogram
	Replans         *metrics.Counter
	LimitClasses    *metrics.Counter
}

// NewRecorder builds a Recorder and registers its metrics with registry. A
// nil registry falls back to the package-level default registry.
func NewRecorder(registry *metrics.Registry) *Recorder {
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}
	r := &Recorder{
		registry: registry,
		SyncedDuration: metrics.NewGauge("motiongen_trajectory_duration_seconds",
			"Synchronized finish time of the most recent replan"),
		CalculationTime: metrics.NewHistogram("motiongen_trajectory_calculation_seconds",
			"Wall-clock time spent solving a replan",
			[]float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3}),
		Replans: metrics.NewCounter("motiongen_trajectory_replans_total",
			"Total number of replans performed (input changed since last tick)"),
		LimitClasses: metrics.NewCounter("motiongen_trajectory_limit_class_total",
			"Count of solved Step1 profiles per DoF and limit class"),
	}
	registry.MustRegister(r.SyncedDuration)
	registry.MustRegister(r.CalculationTime)
	registry.MustRegister(r.Replans)
	registry.MustRegister(r.LimitClasses)
	return r
}

// ObserveProfile records which limit class a single DoF's profile solved
// under, one Counter increment per (dof, limit_class) pair per replan.
func (r *Recorder) ObserveProfile(dofName, limitClass string) {
	r.LimitClasses.Inc(metrics.Labels{"dof": dofName, "limit_class": limitClass})
}

// Observe records one Generator.Update call: calcTimeMicros is the
// calculation latency in microseconds (converted here to seconds to match
// the histogram's unit), and newCalculation reports whether a replan
// actually ran this tick.
func (r *Recorder) Observe(duration, calcTimeMicros float64, newCalculation bool) {
	r.SyncedDuration.Set(nil, duration)
	r.CalculationTime.Observe(nil, calcTimeMicros/1e6)
	if newCalculation {
		r.Replans.Inc(nil)
	}
}
