package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Statements = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hoteldesk", Name: "statements_total", Help: "SQL statements issued by the gateway."},
		[]string{"op", "status"}, // op: execute|query|count|scalar, status: ok|error
	)
	StatementLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hoteldesk", Name: "statement_duration_seconds",
			Help:    "SQL statement duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hoteldesk", Name: "operations_total", Help: "Menu operations by outcome."},
		[]string{"operation", "outcome"}, // outcome: submitted|cancelled|failed
	)
	FieldRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hoteldesk", Name: "field_rejections_total", Help: "Field inputs rejected and re-prompted."},
		[]string{"field"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Statements, StatementLatency, Operations, FieldRejections)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveStatement(op string, err error, dur time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	Statements.WithLabelValues(op, status).Inc()
	StatementLatency.WithLabelValues(op).Observe(dur.Seconds())
}

func ObserveOperation(operation, outcome string) {
	Operations.WithLabelValues(operation, outcome).Inc()
}

func ObserveRejection(field string) {
	FieldRejections.WithLabelValues(field).Inc()
}
