/*
metrics.go - Prometheus instrumentation for the HTTP API

Counters and histograms for the hot operations (rate writes, ledger
mutations, summary builds) plus DB-backed gauges for row counts. All
registration runs once; handlers call the Observe* helpers.
*/
package api

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "haulage_"

	resultSuccess  = "success"
	resultConflict = "conflict"
	resultError    = "error"
)

var (
	registerOnce sync.Once

	rateWrites       *prometheus.CounterVec
	rateConflicts    *prometheus.CounterVec
	ledgerMutations  *prometheus.CounterVec
	ledgerRecomputes prometheus.Counter
	summaryBuilds    *prometheus.CounterVec
	summaryLatency   *prometheus.HistogramVec
)

// InitMetrics registers API metrics and DB-backed gauges. Safe to call more
// than once; only the first call registers.
func InitMetrics(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		rateWrites = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_writes_total",
				Help: "Total rate version create/update/delete operations by result",
			},
			[]string{"operation", "result"},
		)
		rateConflicts = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_conflicts_total",
				Help: "Total rejected rate writes by conflict kind",
			},
			[]string{"kind"},
		)
		ledgerMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_mutations_total",
				Help: "Total ledger insert/update/delete operations by result",
			},
			[]string{"operation", "result"},
		)
		ledgerRecomputes = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_recomputes_total",
				Help: "Total full-sequence balance recomputes",
			},
		)
		summaryBuilds = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "summary_builds_total",
				Help: "Total summary report builds by result",
			},
			[]string{"result"},
		)
		summaryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "summary_build_latency_seconds",
				Help:    "Summary build latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			rateWrites,
			rateConflicts,
			ledgerMutations,
			ledgerRecomputes,
			summaryBuilds,
			summaryLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "rate_versions_count",
			Help: "Stored rate version rows",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM rate_versions")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "ledger_transactions_count",
			Help: "Stored ledger transaction rows",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM ledger_transactions")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	return float64(count)
}

// ObserveRateWrite records one rate version write attempt.
func ObserveRateWrite(operation, result string) {
	if rateWrites != nil {
		rateWrites.WithLabelValues(operation, result).Inc()
	}
}

// IncRateConflict increments the conflict counter by kind (duplicate/overlap).
func IncRateConflict(kind string) {
	if rateConflicts != nil {
		rateConflicts.WithLabelValues(kind).Inc()
	}
}

// ObserveLedgerMutation records one ledger mutation and its implied recompute.
func ObserveLedgerMutation(operation, result string) {
	if ledgerMutations != nil {
		ledgerMutations.WithLabelValues(operation, result).Inc()
	}
	if result == resultSuccess && ledgerRecomputes != nil {
		ledgerRecomputes.Inc()
	}
}

// ObserveSummaryBuild records one summary report build.
func ObserveSummaryBuild(result string, duration time.Duration) {
	if summaryBuilds != nil {
		summaryBuilds.WithLabelValues(result).Inc()
	}
	if summaryLatency != nil {
		summaryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}
