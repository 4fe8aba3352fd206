package metrics

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Package-level Prometheus collectors. They are registered via Register;
// embedders who skip registration still get working no-op counters.
var (
	regOK atomic.Bool

	customersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "haulkeep",
			Subsystem: "records",
			Name:      "customers_created_total",
			Help:      "Number of customers added to the record store.",
		},
	)
	jobsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "haulkeep",
			Subsystem: "records",
			Name:      "jobs_created_total",
			Help:      "Number of jobs added to the record store.",
		},
	)
	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "haulkeep",
			Subsystem: "records",
			Name:      "job_status_transitions_total",
			Help:      "Number of accepted job status transitions.",
		}, []string{"from", "to"},
	)
	saves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "haulkeep",
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Number of successful whole-store saves.",
		},
	)
	saveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "haulkeep",
			Subsystem: "store",
			Name:      "save_failures_total",
			Help:      "Number of saves that failed to write.",
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{customersCreated, jobsCreated, statusTransitions, saves, saveFailures}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

func IncCustomersCreated() { customersCreated.Inc() }
func IncJobsCreated()      { jobsCreated.Inc() }
func IncStatusTransition(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}
func IncSaves()        { saves.Inc() }
func IncSaveFailures() { saveFailures.Inc() }
