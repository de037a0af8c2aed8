package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	danglingReferencesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "theodb",
		Name:      "dangling_references_total",
		Help:      "The number of relationship references that did not resolve to a record.",
	}, []string{"collection"})

	queriesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "theodb",
		Name:      "queries_total",
		Help:      "The number of collection queries served, by operation.",
	}, []string{"collection", "operation"})
)
