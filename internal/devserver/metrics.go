package devserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelflog_dev_requests_total",
		Help: "Total number of HTTP requests to the dev backend",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shelflog_dev_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	linkOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shelflog_dev_link_ops_total",
		Help: "Record link and unlink operations by outcome",
	}, []string{"op", "outcome"})
)
