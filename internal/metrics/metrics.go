// Package metrics records per-run pipeline counters in a Prometheus registry
// and can dump them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"leadflow-engine/internal/pipeline"
)

const namespace = "leadflow"

type Recorder struct {
	reg *prometheus.Registry

	runs          *prometheus.CounterVec
	batches       *prometheus.CounterVec
	failedBatches *prometheus.CounterVec
	fragments     *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	kept          *prometheus.CounterVec
	lastRun       *prometheus.GaugeVec
	lastDuration  *prometheus.GaugeVec
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total", Help: "Completed runs.",
		}, []string{"kind"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "batches_total", Help: "Fetch batches attempted.",
		}, []string{"kind"}),
		failedBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "failed_batches_total", Help: "Fetch batches that failed.",
		}, []string{"kind"}),
		fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "fragments_total", Help: "Raw fragments fetched.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "dropped_total", Help: "Fragments or leads dropped, by reason.",
		}, []string{"kind", "reason"}),
		kept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "kept_total", Help: "Records that reached the ranked output.",
		}, []string{"kind"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_timestamp_seconds", Help: "Unix time the last run finished.",
		}, []string{"kind"}),
		lastDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_duration_seconds", Help: "Wall time of the last run.",
		}, []string{"kind"}),
	}
	r.reg.MustRegister(r.runs, r.batches, r.failedBatches, r.fragments, r.dropped, r.kept, r.lastRun, r.lastDuration)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Observe adds one finished run's stats under kind.
func (r *Recorder) Observe(kind string, s pipeline.Stats, started, finished time.Time) {
	r.runs.WithLabelValues(kind).Inc()
	r.batches.WithLabelValues(kind).Add(float64(s.Batches))
	r.failedBatches.WithLabelValues(kind).Add(float64(s.FailedBatches))
	r.fragments.WithLabelValues(kind).Add(float64(s.Fragments))
	r.dropped.WithLabelValues(kind, "rejected").Add(float64(s.Rejected))
	r.dropped.WithLabelValues(kind, "below_threshold").Add(float64(s.BelowThreshold))
	r.dropped.WithLabelValues(kind, "duplicate").Add(float64(s.Duplicates))
	r.dropped.WithLabelValues(kind, "enrich_failed").Add(float64(s.EnrichFailures))
	r.kept.WithLabelValues(kind).Add(float64(s.Kept))
	r.lastRun.WithLabelValues(kind).Set(float64(finished.Unix()))
	r.lastDuration.WithLabelValues(kind).Set(finished.Sub(started).Seconds())
}

// WriteTextfile writes the registry to path. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
