package patrol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the obstruction scanner.
//
// Metrics:
//   - patrol_trials_total{result} - trials run, by "exited" or "looped"
//   - patrol_trial_ticks - histogram of ticks per trial
//   - patrol_scan_candidates - candidate cells in the most recent scan
//   - patrol_scan_duration_seconds - histogram of whole-scan wall time
type Metrics struct {
	TrialsTotal  *prometheus.CounterVec
	TrialTicks   prometheus.Histogram
	Candidates   prometheus.Gauge
	ScanDuration prometheus.Histogram
}

// NewMetrics creates the scanner metrics and registers them with reg. Pass a
// fresh prometheus.NewRegistry() per process (or per test) to avoid duplicate
// registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TrialsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "patrol_trials_total",
				Help: "Total number of obstruction trials run",
			},
			[]string{"result"},
		),
		TrialTicks: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patrol_trial_ticks",
			Help:    "Ticks simulated per obstruction trial",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		Candidates: f.NewGauge(prometheus.GaugeOpts{
			Name: "patrol_scan_candidates",
			Help: "Candidate obstacle cells in the most recent scan",
		}),
		ScanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patrol_scan_duration_seconds",
			Help:    "Wall time of a full obstruction scan",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeTrial(o Outcome) {
	if m == nil {
		return
	}
	m.TrialsTotal.WithLabelValues(o.Result.String()).Inc()
	m.TrialTicks.Observe(float64(o.Ticks))
}
