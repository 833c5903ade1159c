package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "records_client",
			Name:      "requests_total",
			Help:      "Record operations by outcome (ok, transport, status, decode).",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "records_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of one record operation, including body read.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)
