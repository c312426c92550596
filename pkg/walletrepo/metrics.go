package walletrepo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "walletkit"
	metricsSubsystem = "wallet_repo"
)

var (
	connectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "connects_total",
			Help:      "Total number of connect requests by outcome",
		},
		[]string{"chain", "result"}, // result: success, failure, view
	)

	disconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "disconnects_total",
			Help:      "Total number of disconnect requests by outcome",
		},
		[]string{"chain", "result"},
	)

	peerDisconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "peer_disconnects_total",
			Help:      "Total number of peers disconnected by the mutex",
		},
		[]string{"chain", "result"},
	)

	fallbackLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "fallback_lookups_total",
			Help:      "Total number of fallback lookups by accessor and outcome",
		},
		[]string{"chain", "accessor", "result"}, // result: success, empty
	)
)
