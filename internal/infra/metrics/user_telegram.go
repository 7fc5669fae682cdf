package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsReceivedTotal,
		telegramUpdatesDroppedTotal,
		telegramConnectFailuresTotal,
	)
}

var (
	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming messages and commands from users.",
		},
		[]string{"command"},
	)

	telegramUpdatesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_updates_dropped_total",
			Help: "Updates discarded because polling was shutting down.",
		},
	)

	telegramConnectFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_connect_failures_total",
			Help: "Failed attempts to reach the Bot API at startup.",
		},
	)
)

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncUpdateDropped() {
	telegramUpdatesDroppedTotal.Inc()
}

func IncConnectFailure() {
	telegramConnectFailuresTotal.Inc()
}
