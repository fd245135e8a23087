package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TurnsProcessed     *prometheus.CounterVec
	IntentsClassified  *prometheus.CounterVec
	BookingSteps       *prometheus.CounterVec
	BookingsCompleted  prometheus.Counter
	CodesSent          prometheus.Counter
	CodeVerifications  *prometheus.CounterVec
	CapabilityFailures *prometheus.CounterVec
	ExtractorFallbacks prometheus.Counter
	TurnDuration       prometheus.Histogram
	HTTPRequests       *prometheus.CounterVec
}

// NewMetrics registers the metrics on reg. Pass prometheus.NewRegistry() in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TurnsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "The total number of processed chat turns",
		}, []string{"agent_type"}),
		IntentsClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_classified_total",
			Help:      "The total number of classified intents",
		}, []string{"intent"}),
		BookingSteps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_steps_total",
			Help:      "Booking state machine transitions by step and outcome",
		}, []string{"step", "outcome"}),
		BookingsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_completed_total",
			Help:      "The total number of completed bookings",
		}),
		CodesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_codes_sent_total",
			Help:      "The total number of one-time codes issued",
		}),
		CodeVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_attempts_total",
			Help:      "Verification attempts by result",
		}, []string{"result"}),
		CapabilityFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capability_failures_total",
			Help:      "Failures of downstream capabilities",
		}, []string{"capability"}),
		ExtractorFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractor_fallbacks_total",
			Help:      "Turns where the model extractor was replaced by the deterministic one",
		}),
		TurnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_turn_duration_seconds",
			Help:      "Time taken to process a chat turn",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// NewNoop returns metrics bound to a throwaway registry.
func NewNoop() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
