package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"event"},
	)
	chatMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_chat_messages_total",
			Help: "Total number of persisted chat messages.",
		},
		[]string{"kind"},
	)
	draftOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_draft_operations_total",
			Help: "Total number of movie draft operations.",
		},
		[]string{"op", "result"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		wsActiveConnections,
		wsEventsTotal,
		chatMessagesTotal,
		draftOperationsTotal,
		amqpPublishErrorsTotal,
	)
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncChatMessage(kind string) {
	chatMessagesTotal.WithLabelValues(kind).Inc()
}

func IncDraftOp(op, result string) {
	draftOperationsTotal.WithLabelValues(op, result).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
