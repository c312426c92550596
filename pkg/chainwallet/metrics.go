package chainwallet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "walletkit"
	metricsSubsystem = "chain_wallet"
)

var (
	statusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "status_transitions_total",
			Help:      "Total number of chain wallet status transitions",
		},
		[]string{"chain", "wallet", "status"},
	)

	endpointProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "endpoint_probes_total",
			Help:      "Total number of RPC and REST endpoint probes",
		},
		[]string{"chain", "kind", "result"}, // result: success, failure
	)

	endpointCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "endpoint_cache_hits_total",
			Help:      "Total number of endpoint lookups served from cache",
		},
		[]string{"chain", "kind"},
	)

	sessionsExpiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "sessions_expired_total",
			Help:      "Total number of sessions ended by expiry",
		},
		[]string{"chain", "wallet"},
	)
)
