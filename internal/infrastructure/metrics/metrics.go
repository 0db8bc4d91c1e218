package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Sale metrics
	SalesCreated prometheus.Counter
	SalesDeleted prometheus.Counter
	SaleAmount   prometheus.Histogram

	// Debt metrics
	DebtsCreated prometheus.Counter
	DebtsDeleted prometheus.Counter

	// Instrument metrics
	InstrumentsIssued  prometheus.Counter
	InstrumentsCleared prometheus.Counter
	OverdueResolutions *prometheus.CounterVec

	// Trade-in credit metrics
	PermutasCreated  prometheus.Counter
	PermutasConsumed prometheus.Counter

	// Running account metrics
	AcertosSettled     prometheus.Counter
	AcertoSettleAmount prometheus.Histogram
	SettleConflicts    prometheus.Counter
	SettleDuration     prometheus.Histogram

	// Timeline metrics
	TimelineCacheHits   prometheus.Counter
	TimelineCacheMisses prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBErrors      *prometheus.CounterVec
	DBConnections prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SalesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_sales_created_total",
			Help: "Total number of sales recorded",
		}),
		SalesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_sales_deleted_total",
			Help: "Total number of sales deleted",
		}),
		SaleAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_sale_amount",
			Help:    "Distribution of sale totals",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),
		DebtsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_debts_created_total",
			Help: "Total number of debts recorded",
		}),
		DebtsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_debts_deleted_total",
			Help: "Total number of debts deleted",
		}),
		InstrumentsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_instruments_issued_total",
			Help: "Total number of checks and boletos issued",
		}),
		InstrumentsCleared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_instruments_cleared_total",
			Help: "Total number of instruments cleared on payment",
		}),
		OverdueResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_overdue_resolutions_total",
			Help: "Total number of overdue resolutions by action",
		}, []string{"action"}),
		PermutasCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_permutas_created_total",
			Help: "Total number of trade-in credits registered",
		}),
		PermutasConsumed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_permutas_consumed_total",
			Help: "Total number of trade-in credit consumptions",
		}),
		AcertosSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_acertos_settled_total",
			Help: "Total number of running-account settlements",
		}),
		AcertoSettleAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_acerto_settle_amount",
			Help:    "Distribution of settlement amounts",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),
		SettleConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_settle_conflicts_total",
			Help: "Total number of settlements rejected by version conflicts",
		}),
		SettleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contas_settle_duration_seconds",
			Help:    "Duration of running-account settlements",
			Buckets: prometheus.DefBuckets,
		}),
		TimelineCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_timeline_cache_hits_total",
			Help: "Total number of due-date timeline cache hits",
		}),
		TimelineCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contas_timeline_cache_misses_total",
			Help: "Total number of due-date timeline cache misses",
		}),
		DBQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_db_queries_total",
			Help: "Total number of database queries",
		}, []string{"operation"}),
		DBErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_db_errors_total",
			Help: "Total number of database errors",
		}, []string{"operation"}),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "contas_db_connections",
			Help: "Current number of database connections",
		}),
		RateLimitHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contas_rate_limit_hits_total",
			Help: "Total number of rate-limited requests",
		}, []string{"path"}),
	}
}
