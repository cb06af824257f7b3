package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	secretsLoadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainauth",
		Subsystem: "secrets_loader",
		Name:      "load_total",
		Help:      "Count of secrets file loads.",
	}, []string{"status"})

	secretsLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainauth",
		Subsystem: "secrets_loader",
		Name:      "load_duration_seconds",
		Help:      "Duration of loading and decoding the secrets file.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// SecretsLoader tracks metrics for loading node secrets.
type SecretsLoader struct{}

func NewSecretsLoader() *SecretsLoader {
	return &SecretsLoader{}
}

// ObserveLoad records a load outcome and duration.
func (m SecretsLoader) ObserveLoad(err error, started time.Time) {
	status := statusOf(err)
	secretsLoadTotal.WithLabelValues(status).Inc()
	secretsLoadDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
