package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ledger operation metrics.
var (
	ledgerOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "umabank_ledger_operations_total",
			Help: "Total ledger operations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	accountCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "umabank_ledger_accounts",
		Help: "Number of open accounts in the registry.",
	})
)

// Init registers the metrics in the default registry. Call once.
func Init() {
	prometheus.MustRegister(ledgerOpsTotal, accountCount)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLedgerOp counts one ledger operation with its outcome label
// ("ok", "not_found", "insufficient_funds", ...).
func ObserveLedgerOp(op, outcome string) {
	ledgerOpsTotal.WithLabelValues(op, outcome).Inc()
}

// SetAccountCount tracks the registry size.
func SetAccountCount(n int) {
	accountCount.Set(float64(n))
}
