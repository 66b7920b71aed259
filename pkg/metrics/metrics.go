// Package metrics provides Prometheus metrics for the Collably admin client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks outbound API requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collably",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Total number of outbound API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks outbound API request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collably",
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound API requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// StoreActionsTotal tracks actions applied to the store by slice and lifecycle phase
	StoreActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collably",
			Subsystem: "store",
			Name:      "actions_total",
			Help:      "Total number of actions applied to the store",
		},
		[]string{"slice", "phase"},
	)

	// StoreVoidedSettlements tracks settlements dropped because their token was voided
	StoreVoidedSettlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collably",
			Subsystem: "store",
			Name:      "voided_settlements_total",
			Help:      "Total number of async action settlements ignored because their token was voided",
		},
		[]string{"slice"},
	)

	// StoreTasksInFlight tracks async actions currently awaiting settlement
	StoreTasksInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "collably",
			Subsystem: "store",
			Name:      "tasks_in_flight",
			Help:      "Number of async actions awaiting settlement",
		},
	)

	// ImportRowsTotal tracks spreadsheet import rows by outcome
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collably",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Total number of imported spreadsheet rows by outcome",
		},
		[]string{"resource", "outcome"},
	)

	// SessionOperationDuration tracks session backend operation duration
	SessionOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collably",
			Subsystem: "session",
			Name:      "operation_duration_seconds",
			Help:      "Duration of session store operations in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"backend", "operation"},
	)

	// KafkaMessagesPublished tracks action stream messages handed to Kafka
	KafkaMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collably",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Total number of action messages published to Kafka",
		},
		[]string{"topic", "status"},
	)
)

// RecordHTTPRequest records an outbound API request metric
func RecordHTTPRequest(method, route, statusCode string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordStoreAction records an applied store action
func RecordStoreAction(slice, phase string) {
	if slice == "" {
		slice = "*"
	}
	StoreActionsTotal.WithLabelValues(slice, phase).Inc()
}

// RecordVoidedSettlement records a settlement dropped by the store
func RecordVoidedSettlement(slice string) {
	StoreVoidedSettlements.WithLabelValues(slice).Inc()
}

// RecordImportRow records the outcome of one imported row
func RecordImportRow(resource, outcome string) {
	ImportRowsTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordSessionOperation records a session store operation
func RecordSessionOperation(backend, operation string, durationSeconds float64) {
	SessionOperationDuration.WithLabelValues(backend, operation).Observe(durationSeconds)
}

// RecordKafkaPublish records a Kafka publish operation
func RecordKafkaPublish(topic, status string) {
	KafkaMessagesPublished.WithLabelValues(topic, status).Inc()
}
