package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ledger engine.
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter

	// Entry metrics
	EntriesCreated *prometheus.CounterVec

	// Transfer lifecycle metrics
	TransfersAccepted prometheus.Counter

	// Scheduled transfer metrics
	ScheduledProcessed *prometheus.CounterVec

	// Operation failures by operation name
	OperationErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timebank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timebank_entries_created_total",
				Help: "Total number of ledger entries created by kind",
			},
			[]string{"kind"},
		),
		TransfersAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "timebank_transfers_accepted_total",
			Help: "Total number of transfers accepted",
		}),
		ScheduledProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timebank_scheduled_processed_total",
				Help: "Total number of scheduled transfers resolved by outcome",
			},
			[]string{"outcome"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timebank_operation_errors_total",
				Help: "Total number of failed operations by name",
			},
			[]string{"operation"},
		),
	}
}
