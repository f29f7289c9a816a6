package telemetry

import (
	"driving-quiz-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the practice counters exported on /metrics.
type Metrics struct {
	sessionsStarted   *prometheus.CounterVec
	answers           *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
}

// NewMetrics registers the practice counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_started_total",
			Help:      "Practice sessions started, by category filter.",
		}, []string{"category"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_total",
			Help:      "Answers submitted, by result.",
		}, []string{"result"}),
		sessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_completed_total",
			Help:      "Practice sessions completed, by result tier.",
		}, []string{"tier"}),
	}
	reg.MustRegister(m.sessionsStarted, m.answers, m.sessionsCompleted)
	return m
}

// Nop returns counters registered on a private registry, for callers that do not export metrics.
func Nop() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) SessionStarted(category domain.Category) {
	m.sessionsStarted.WithLabelValues(string(category)).Inc()
}

func (m *Metrics) Answered(correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.answers.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionCompleted(tier domain.Tier) {
	m.sessionsCompleted.WithLabelValues(string(tier)).Inc()
}
