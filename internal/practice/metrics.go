package practice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studydrill_attempts_total",
		Help: "Recorded practice attempts by result.",
	}, []string{"result"})

	selectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studydrill_selections_total",
		Help: "Questions served by the weighted selector.",
	})
)
