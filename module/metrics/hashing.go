package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onflow/flow-sha3/module"
)

type HashCollector struct {
	filesHashed  *prometheus.CounterVec
	bytesHashed  *prometheus.CounterVec
	hashFailures *prometheus.CounterVec
	hashDuration *prometheus.HistogramVec
	checks       *prometheus.CounterVec
}

var _ module.HashMetrics = (*HashCollector)(nil)

// NewHashCollector registers the hashing collectors with registerer. Pass a
// fresh prometheus.Registry when the collector is created more than once in
// a process.
func NewHashCollector(registerer prometheus.Registerer) *HashCollector {
	r := NewRegisterer(registerer)

	hc := &HashCollector{
		filesHashed: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA3,
			Subsystem: subsystemHashing,
			Name:      "files_total",
			Help:      "the number of inputs hashed successfully",
		}, []string{LabelAlgorithm}),

		bytesHashed: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA3,
			Subsystem: subsystemHashing,
			Name:      "bytes_total",
			Help:      "the number of input bytes absorbed",
		}, []string{LabelAlgorithm}),

		hashFailures: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA3,
			Subsystem: subsystemHashing,
			Name:      "failures_total",
			Help:      "the number of inputs that could not be hashed",
		}, []string{LabelAlgorithm}),

		hashDuration: r.RegisterNewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceSHA3,
			Subsystem: subsystemHashing,
			Name:      "duration_seconds",
			Help:      "the time spent reading and hashing one input",
			Buckets:   []float64{.0001, .001, .01, .1, 1, 10},
		}, []string{LabelAlgorithm}),

		checks: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA3,
			Subsystem: subsystemCheck,
			Name:      "digests_total",
			Help:      "the number of checksum lines verified, by result",
		}, []string{LabelAlgorithm, LabelResult}),
	}

	return hc
}

func (hc *HashCollector) FileHashed(algo string, bytes int64, duration time.Duration) {
	hc.filesHashed.WithLabelValues(algo).Inc()
	hc.bytesHashed.WithLabelValues(algo).Add(float64(bytes))
	hc.hashDuration.WithLabelValues(algo).Observe(duration.Seconds())
}

func (hc *HashCollector) HashFailed(algo string) {
	hc.hashFailures.WithLabelValues(algo).Inc()
}

func (hc *HashCollector) DigestChecked(algo string, ok bool) {
	result := ResultOK
	if !ok {
		result = ResultFailed
	}
	hc.checks.With(prometheus.Labels{
		LabelAlgorithm: algo,
		LabelResult:    result,
	}).Inc()
}

// WriteTextfile writes every metric of gatherer to path in the text
// exposition format read by node_exporter's textfile collector.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("could not write metrics to %s: %w", path, err)
	}
	return nil
}
