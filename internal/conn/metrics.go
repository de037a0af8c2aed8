package conn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "theodb_ws_requests_total",
		Help: "Number of websocket requests handled, by action and response status.",
	}, []string{"action", "status"})

	connectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "theodb_ws_connections",
		Help: "Number of open websocket connections.",
	})
)

// actionLabel bounds the action label to the known read actions.
func actionLabel(action RequestAction) string {
	if !action.IsReadOnly() {
		return "unknown"
	}
	return string(action)
}
