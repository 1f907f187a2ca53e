package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Total number of rent payments recorded",
		},
		[]string{"method"},
	)

	TenantsAssigned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenants_assigned_total",
			Help: "Total number of tenants auto-assigned to properties",
		},
		[]string{"trigger"},
	)

	AssignmentFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_assignment_failures_total",
			Help: "Total number of tenant assignments that failed to persist",
		},
	)

	BalanceQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "balance_queries_total",
			Help: "Total number of balance calculations served",
		},
	)
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(PaymentsRecorded)
	prometheus.MustRegister(TenantsAssigned)
	prometheus.MustRegister(AssignmentFailures)
	prometheus.MustRegister(BalanceQueries)
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
