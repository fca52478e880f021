package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess      = "success"
	outcomeValidation   = "validation_error"
	outcomeHTTPError    = "http_error"
	outcomeNetworkError = "network_error"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "erkseed_client",
			Name:      "operations_total",
			Help:      "Client operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "erkseed_client",
			Name:      "http_requests_total",
			Help:      "HTTP exchanges by method and status code (\"error\" when no response).",
		},
		[]string{"method", "code"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "erkseed_client",
			Name:      "http_retries_total",
			Help:      "Requests re-sent after a recoverable failure.",
		},
		[]string{"method"},
	)

	batchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "erkseed_client",
			Name:      "batch_items_total",
			Help:      "Items processed by batch helpers.",
		},
		[]string{"kind", "outcome"},
	)
)
