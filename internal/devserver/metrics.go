package devserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "records_devserver",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route template, method and status code.",
	},
	[]string{"route", "method", "code"},
)
