// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/chainauth/internal/witness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	witnessBuildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainauth",
		Subsystem: "witness_builder",
		Name:      "build_total",
		Help:      "Count of witness builds.",
	}, []string{"kind", "status"})

	witnessBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainauth",
		Subsystem: "witness_builder",
		Name:      "build_duration_seconds",
		Help:      "Duration of building a witness.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs..2.6s
	}, []string{"kind", "status"})
)

// WitnessBuilder tracks metrics for witness building.
type WitnessBuilder struct{}

func NewWitnessBuilder() *WitnessBuilder {
	return &WitnessBuilder{}
}

// ObserveBuild records a build outcome and duration per witness kind.
func (m WitnessBuilder) ObserveBuild(kind witness.Kind, err error, started time.Time) {
	status := statusOf(err)
	witnessBuildTotal.WithLabelValues(kind.String(), status).Inc()
	witnessBuildDuration.WithLabelValues(kind.String(), status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
