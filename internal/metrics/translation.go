package metrics

import "github.com/prometheus/client_golang/prometheus"

// Translation Prometheus metrics.
var (
	TranslationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentorsearch",
			Name:      "translation_requests_total",
			Help:      "Total number of completion requests for query translation",
		},
		[]string{"provider", "model", "status"},
	)

	TranslationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mentorsearch",
			Name:      "translation_request_duration_seconds",
			Help:      "Completion request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	TranslationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentorsearch",
			Name:      "translation_errors_total",
			Help:      "Total translation errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	TranslationPayloadFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mentorsearch",
			Name:      "translation_payload_failures_total",
			Help:      "Completion outputs that yielded no usable payload",
		},
		[]string{"reason"}, // "no_payload" / "malformed"
	)
)

var translationMetricsRegistered bool

// RegisterTranslationMetrics registers translation metrics. Must be called once from main.
func RegisterTranslationMetrics() {
	if translationMetricsRegistered {
		return
	}
	prometheus.MustRegister(TranslationRequestsTotal)
	prometheus.MustRegister(TranslationRequestDuration)
	prometheus.MustRegister(TranslationErrorsTotal)
	prometheus.MustRegister(TranslationPayloadFailuresTotal)
	translationMetricsRegistered = true
}
