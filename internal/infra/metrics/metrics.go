// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound webhook updates by outcome (accepted/skipped/malformed/dropped).",
		},
		[]string{"outcome"},
	)

	repliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_replies_total",
			Help: "Outbound chat replies by status (sent/failed).",
		},
		[]string{"status"},
	)

	storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_store_ops_total",
			Help: "Activation store operations by op (save/find) and status.",
		},
		[]string{"op", "status"},
	)

	dispatchLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_dispatch_latency_ms",
			Help:    "Update dispatch latency distribution in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"success"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, repliesTotal, storeOpsTotal, dispatchLatencyMs,
		)
	})
}

func IncUpdate(outcome string) {
	updatesTotal.WithLabelValues(outcome).Inc()
}

func IncReply(status string) {
	repliesTotal.WithLabelValues(status).Inc()
}

func IncStoreOp(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeOpsTotal.WithLabelValues(op, status).Inc()
}

func ObserveDispatch(d time.Duration, success bool) {
	dispatchLatencyMs.WithLabelValues(strconv.FormatBool(success)).
		Observe(float64(d.Milliseconds()))
}
