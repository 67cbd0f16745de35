package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by route, method and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_http_requests_total",
		Help: "API requests processed, by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	// BetsPlacedTotal counts accepted bet placements by game.
	BetsPlacedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_bets_placed_total",
		Help: "Bets accepted into the ledger, by game.",
	}, []string{"game"})

	// BetsSettledTotal counts settlements by game and outcome.
	BetsSettledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_bets_settled_total",
		Help: "Bets settled, by game and outcome.",
	}, []string{"game", "outcome"})
)
