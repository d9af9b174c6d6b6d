package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesTotal,
		telegramSendFailuresTotal,
		membershipChecksTotal,
	)
}

var (
	telegramUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_total",
			Help: "Inbound webhook updates from Telegram, by kind.",
		},
		[]string{"kind"}, // start | recheck | other
	)

	telegramSendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_send_failures_total",
			Help: "Outbound Bot API calls that failed and were swallowed.",
		},
	)

	membershipChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_checks_total",
			Help: "getChatMember calls by outcome.",
		},
		[]string{"outcome"}, // member | not_member | error
	)
)

func IncTelegramUpdate(kind string) {
	telegramUpdatesTotal.WithLabelValues(kind).Inc()
}

func IncTelegramSendFailure() {
	telegramSendFailuresTotal.Inc()
}

func IncMembershipCheck(outcome string) {
	membershipChecksTotal.WithLabelValues(outcome).Inc()
}
