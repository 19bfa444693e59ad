// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "speech_feedback"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Assessment metrics
	AssessmentsTotal   *prometheus.CounterVec
	AssessmentAccuracy prometheus.Histogram
	AssessmentWords    prometheus.Histogram

	// Feedback decision metrics
	FeedbackDecisions *prometheus.CounterVec

	// Remote feedback metrics
	RemoteFeedbackLatency  prometheus.Histogram
	RemoteFeedbackFailures *prometheus.CounterVec
	RemoteBreakerState     prometheus.Gauge

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// STT metrics
	STTLatency *prometheus.HistogramVec
	STTErrors  *prometheus.CounterVec

	// Request metrics
	ValidationRejected *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics creates all metrics and registers them with reg.
// A nil registerer leaves the metrics unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AssessmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Total number of assessments by input kind",
		}, []string{"kind"}),
		AssessmentAccuracy: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_accuracy_percent",
			Help:      "Word-level accuracy of assessments",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		AssessmentWords: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_reference_words",
			Help:      "Number of reference words per assessment",
			Buckets:   []float64{1, 3, 5, 8, 12, 20, 40},
		}),

		FeedbackDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_decisions_total",
			Help:      "Feedback decisions by tier and local rule",
		}, []string{"tier", "rule"}),

		RemoteFeedbackLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_feedback_latency_seconds",
			Help:      "Remote feedback call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		RemoteFeedbackFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_feedback_failures_total",
			Help:      "Remote feedback calls answered with the fallback message",
		}, []string{"reason"}),
		RemoteBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remote_feedback_breaker_state",
			Help:      "Remote feedback circuit breaker state (0=closed, 1=half-open, 2=open)",
		}),

		KafkaPublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		STTLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_latency_seconds",
			Help:      "Speech-to-text processing latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"provider"}),
		STTErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_errors_total",
			Help:      "Total number of STT errors",
		}, []string{"provider", "error_type"}),

		ValidationRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejected_total",
			Help:      "Requests rejected by input validation",
		}, []string{"field"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// RecordAssessment records a completed assessment.
func (m *Metrics) RecordAssessment(kind string, accuracy, totalWords int) {
	m.AssessmentsTotal.WithLabelValues(kind).Inc()
	m.AssessmentAccuracy.Observe(float64(accuracy))
	m.AssessmentWords.Observe(float64(totalWords))
}

// RecordFeedbackDecision records which tier produced feedback.
func (m *Metrics) RecordFeedbackDecision(tier, rule string) {
	if rule == "" {
		rule = "none"
	}
	m.FeedbackDecisions.WithLabelValues(tier, rule).Inc()
}

// RecordRemoteFeedback records a remote feedback call. An empty reason means success.
func (m *Metrics) RecordRemoteFeedback(reason string, latencySeconds float64) {
	m.RemoteFeedbackLatency.Observe(latencySeconds)
	if reason != "" {
		m.RemoteFeedbackFailures.WithLabelValues(reason).Inc()
	}
}

// SetBreakerState records the remote feedback breaker state.
func (m *Metrics) SetBreakerState(state int) {
	m.RemoteBreakerState.Set(float64(state))
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordSTT records a transcription call.
func (m *Metrics) RecordSTT(provider string, latencySeconds float64) {
	m.STTLatency.WithLabelValues(provider).Observe(latencySeconds)
}

// RecordSTTError records an STT error.
func (m *Metrics) RecordSTTError(provider, errorType string) {
	m.STTErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordValidationRejected records a request rejected by validation.
func (m *Metrics) RecordValidationRejected(field string) {
	m.ValidationRejected.WithLabelValues(field).Inc()
}

// RecordHTTPRequest records a served HTTP API request.
func (m *Metrics) RecordHTTPRequest(route string, code int) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
