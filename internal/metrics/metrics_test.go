package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSettlement("pending", 2)
	m.ObserveSettlement("pending", 1)
	m.ObserveSettlement("settled", 0)
	m.ObserveSkippedRows(3)
	m.ObserveSkippedRows(0)
	m.ObserveRPC("/settleup.v1.SettlementService/GetBalances", "ok", 5*time.Millisecond)

	if got := testutil.ToFloat64(m.settlements.WithLabelValues("pending")); got != 2 {
		t.Errorf("pending settlements = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.settlements.WithLabelValues("settled")); got != 1 {
		t.Errorf("settled settlements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.skippedRows); got != 3 {
		t.Errorf("skipped rows = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/settleup.v1.SettlementService/GetBalances", "ok")); got != 1 {
		t.Errorf("rpc requests = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.transactions); n != 1 {
		t.Errorf("transactions histogram series = %d, want 1", n)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSettlement("pending", 1)
	m.ObserveSkippedRows(1)
	m.ObserveRPC("x", "ok", time.Second)
}
