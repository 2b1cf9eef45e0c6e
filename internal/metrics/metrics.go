package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AttemptsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typetutor_attempts_recorded_total",
		Help: "Practice attempts written to the log.",
	}, []string{"anonymous"})

	BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typetutor_badges_awarded_total",
		Help: "Badge tiers newly recorded in the ledger.",
	}, []string{"level"})

	StatRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typetutor_stat_recomputes_total",
		Help: "Aggregate stat recomputations run.",
	})
)
