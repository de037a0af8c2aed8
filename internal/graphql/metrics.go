package graphql

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "theodb",
	Name:      "graphql_operation_duration_seconds",
	Help:      "The time taken to execute a GraphQL document, by outcome.",
	Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
}, []string{"outcome"})
