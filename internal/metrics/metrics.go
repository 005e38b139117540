// Package metrics exposes batch counters in the Prometheus text format,
// for the node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ieee0824/g2pdict/g2p"
)

const namespace = "g2pdict"

// Recorder holds the counters of one process. Each Recorder has its own
// registry so tests and repeated runs do not collide.
type Recorder struct {
	reg *prometheus.Registry

	words     *prometheus.CounterVec
	processed prometheus.Counter
	dropped   prometheus.Counter
	failed    prometheus.Counter
	duration  prometheus.Gauge
	lastRun   prometheus.Gauge
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		words: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Transcribed words by confidence tier.",
		}, []string{"tier"}),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oov_processed_total",
			Help:      "Out-of-vocabulary word-forms read.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compounds_dropped_total",
			Help:      "Apostrophe compounds with a part missing from the lexicon.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "words_failed_total",
			Help:      "Words rejected because of an unknown character.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last generate run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last generate run finished.",
		}),
	}
	r.reg.MustRegister(r.words, r.processed, r.dropped, r.failed, r.duration, r.lastRun)

	// Expose every tier, even at zero.
	for _, t := range g2p.Tiers() {
		r.words.WithLabelValues(t.String())
	}
	return r
}

// Observe adds the counts of one batch.
func (r *Recorder) Observe(res *g2p.Result, elapsed time.Duration) {
	for _, t := range g2p.Tiers() {
		r.words.WithLabelValues(t.String()).Add(float64(res.Tier(t).Len()))
	}
	r.processed.Add(float64(res.Processed))
	r.dropped.Add(float64(len(res.Dropped)))
	r.failed.Add(float64(len(res.Failed)))
	r.duration.Set(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()
}

// Registry returns the registry holding the metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteFile writes the metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
