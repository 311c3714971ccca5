package websocket

import "github.com/prometheus/client_golang/prometheus"

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_ws_connections",
			Help: "Current number of active websocket connections.",
		},
	)
	wsStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_ws_active_streams",
			Help: "Current number of in-flight assistant streams.",
		},
	)
	wsChunksDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_ws_chunks_delivered_total",
			Help: "Total assistant stream chunks delivered to clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(wsConnections, wsStreams, wsChunksDelivered)
}

func incConnections() {
	wsConnections.Inc()
}

func decConnections() {
	wsConnections.Dec()
}

func incStreams() {
	wsStreams.Inc()
}

func decStreams() {
	wsStreams.Dec()
}

func addChunksDelivered(count int) {
	wsChunksDelivered.Add(float64(count))
}
