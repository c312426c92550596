package manager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "walletkit"
	metricsSubsystem = "wallet_manager"
)

var (
	sessionWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "session_writes_total",
			Help:      "Total number of session saves and deletes",
		},
		[]string{"chain", "operation", "result"},
	)

	sessionsRestoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "sessions_restored_total",
			Help:      "Total number of persisted sessions processed on restore",
		},
		[]string{"chain", "result"},
	)
)
