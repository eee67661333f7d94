// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	epochsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "epochs_total",
		Help:      "Count of processed epochs.",
	}, []string{"status"})

	epochDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "epoch_duration_seconds",
		Help:      "Duration of one epoch, resolution plus commit.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	epochCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "epoch_candidates",
		Help:      "Number of candidate transactions per epoch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	})

	epochAccepted = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "epoch_accepted",
		Help:      "Number of accepted transactions per epoch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	})

	epochResolverPasses = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "resolver_passes",
		Help:      "Fixed-point scan passes per epoch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	epochTotalFee = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgercore7000",
		Subsystem: "epoch_worker",
		Name:      "accepted_fee_total",
		Help:      "Cumulative fee of accepted transactions, in base units.",
	})
)

// EpochWorker tracks metrics for the epoch processing loop.
type EpochWorker struct{}

// NewEpochWorker constructs an EpochWorker metrics collector.
func NewEpochWorker() *EpochWorker {
	return &EpochWorker{}
}

// ObserveEpoch records the outcome of one epoch.
func (m EpochWorker) ObserveEpoch(err error, candidates, accepted, passes int, totalFee int64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	epochsTotal.WithLabelValues(status).Inc()
	epochDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	epochCandidates.Observe(float64(candidates))
	epochAccepted.Observe(float64(accepted))
	epochResolverPasses.Observe(float64(passes))
	if totalFee > 0 {
		epochTotalFee.Add(float64(totalFee))
	}
}
