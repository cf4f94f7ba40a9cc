package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wingo_bets_placed_total",
		Help: "Number of accepted bets",
	})

	RoundsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wingo_rounds_settled_total",
		Help: "Number of fully settled rounds",
	})

	SettlementRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wingo_settlement_retries_total",
		Help: "Number of settlement passes that failed and will be retried",
	})

	PayoutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wingo_payout_total",
		Help: "Total amount credited to winners",
	})
)
