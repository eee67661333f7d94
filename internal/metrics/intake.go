package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	intakeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgercore7000",
		Subsystem: "intake",
		Name:      "requests_total",
		Help:      "Count of intake API requests.",
	}, []string{"handler", "code"})

	intakeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgercore7000",
		Subsystem: "intake",
		Name:      "request_duration_seconds",
		Help:      "Duration of intake API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler", "code"})

	intakeTransactionsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgercore7000",
		Subsystem: "intake",
		Name:      "transactions_submitted_total",
		Help:      "Count of candidate transactions accepted into the pending buffer.",
	})
)

// Intake tracks metrics for the HTTP intake API.
type Intake struct{}

// NewIntake creates an Intake metrics collector.
func NewIntake() *Intake {
	return &Intake{}
}

// ObserveRequest records one handled intake request.
func (m Intake) ObserveRequest(handler string, code int, started time.Time) {
	intakeRequestsTotal.WithLabelValues(handler, strconv.Itoa(code)).Inc()
	intakeRequestDuration.WithLabelValues(handler, strconv.Itoa(code)).Observe(time.Since(started).Seconds())
}

// ObserveSubmitted records candidate transactions queued for the next epoch.
func (m Intake) ObserveSubmitted(count int) {
	intakeTransactionsSubmitted.Add(float64(count))
}
