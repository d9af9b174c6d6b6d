package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		bonusIssuedTotal,
		bonusVerifiedTotal,
		bonusStatusChecksTotal,
	)
}

var (
	bonusIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bonus_tokens_issued_total",
			Help: "Total number of bonus tokens issued to the chat widget.",
		},
	)

	bonusVerifiedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonus_tokens_verified_total",
			Help: "Tokens marked verified, by the flow that completed them.",
		},
		[]string{"via"}, // start | recheck
	)

	bonusStatusChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonus_status_checks_total",
			Help: "Status endpoint lookups by outcome.",
		},
		[]string{"result"}, // not_found | expired | pending | verified
	)
)

func IncBonusIssued() {
	bonusIssuedTotal.Inc()
}

func IncBonusVerified(via string) {
	bonusVerifiedTotal.WithLabelValues(via).Inc()
}

func IncStatusCheck(result string) {
	bonusStatusChecksTotal.WithLabelValues(result).Inc()
}
