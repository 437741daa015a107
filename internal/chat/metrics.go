package chat

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_connected_sessions",
		Help: "Number of live connections, authenticated or not",
	})

	AuthenticatedSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_authenticated_sessions",
		Help: "Number of connections bound to an account name",
	})

	FramesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_frames_total",
		Help: "Decoded request frames by action",
	}, []string{"action"})

	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_dispatch_seconds",
		Help:    "Time to dispatch one request frame",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	PendingMessages = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_pending_messages",
		Help: "Chat messages accepted but not yet handed to the receiver",
	})

	DeliveredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_delivered_messages_total",
		Help: "Chat messages handed to the receiver's connection",
	})

	DroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_dropped_messages_total",
		Help: "Accepted chat messages dropped because the receiver left",
	})

	TeardownsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_teardowns_total",
		Help: "Sessions destroyed by reason",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(ConnectedSessions)
	prometheus.MustRegister(AuthenticatedSessions)
	prometheus.MustRegister(FramesTotal)
	prometheus.MustRegister(DispatchDuration)
	prometheus.MustRegister(PendingMessages)
	prometheus.MustRegister(DeliveredTotal)
	prometheus.MustRegister(DroppedTotal)
	prometheus.MustRegister(TeardownsTotal)
}
