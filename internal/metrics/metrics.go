// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tanuki_quiz"

var (
	// UploadsTotal counts ingestion attempts by result ("ok" or an error code).
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Image ingestion attempts by result.",
	}, []string{"result"})

	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_sessions_created_total",
		Help:      "Quiz sessions registered.",
	})

	// AnswersTotal counts submissions; outcome is "correct", "incorrect" or "unknown".
	AnswersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_answers_total",
		Help:      "Quiz answer submissions by outcome.",
	}, []string{"outcome"})

	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_sessions_evicted_total",
		Help:      "Quiz sessions removed by the expiry sweep.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "quiz_sessions_active",
		Help:      "Quiz sessions currently held in memory.",
	})
)

// ObserveVerdict records the outcome of one answer submission.
func ObserveVerdict(correct bool, known bool) {
	switch {
	case !known:
		AnswersTotal.WithLabelValues("unknown").Inc()
	case correct:
		AnswersTotal.WithLabelValues("correct").Inc()
	default:
		AnswersTotal.WithLabelValues("incorrect").Inc()
	}
}
