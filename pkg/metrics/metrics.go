// Package metrics defines the Prometheus metrics of the game.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Scan results
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Mission completion triggers
const (
	TriggerScan   = "scan"
	TriggerManual = "manual"
)

var (
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alienwaste_scans_total",
			Help: "Total number of scan attempts by result and rejection code",
		},
		[]string{"result", "code"},
	)

	MissionsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alienwaste_missions_completed_total",
			Help: "Total number of daily missions completed, by what completed them",
		},
		[]string{"trigger"},
	)

	Players = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "alienwaste_players",
			Help: "Number of players with stored game state",
		},
	)

	HungerTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alienwaste_hunger_ticks_total",
			Help: "Total number of per-player hunger increases applied",
		},
	)
)

// Collectors returns every game metric for registration
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ScansTotal,
		MissionsCompletedTotal,
		Players,
		HungerTicksTotal,
	}
}
