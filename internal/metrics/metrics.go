// Package metrics exposes Prometheus instruments for settlement runs and RPCs.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "settleup"

// Metrics holds the registered collectors.
type Metrics struct {
	settlements  *prometheus.CounterVec
	transactions prometheus.Histogram
	skippedRows  prometheus.Counter
	rpcRequests  *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement runs by outcome status.",
		}, []string{"status"}),
		transactions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transactions",
			Help:      "Number of payments emitted per settlement run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		skippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_rows_total",
			Help:      "Ledger rows skipped because of invalid data.",
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	reg.MustRegister(m.settlements, m.transactions, m.skippedRows, m.rpcRequests, m.rpcDuration)
	return m
}

// ObserveSettlement records one settlement run.
func (m *Metrics) ObserveSettlement(status string, transactions int) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(status).Inc()
	m.transactions.Observe(float64(transactions))
}

// ObserveSkippedRows adds n skipped ledger rows.
func (m *Metrics) ObserveSkippedRows(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.skippedRows.Add(float64(n))
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
