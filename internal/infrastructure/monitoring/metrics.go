package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
)

type BusinessMetrics struct {
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	CatalogProducts     prometheus.Gauge
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

var (
	Business = BusinessMetrics{
		CalculationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emi_calculations_total",
				Help: "Total number of EMI calculations by outcome.",
			},
			[]string{"outcome"},
		),
		CalculationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "emi_calculation_duration_seconds",
				Help:    "Histogram of EMI calculation latencies, including event publishing.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		CatalogProducts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "emi_catalog_products",
				Help: "Number of loan products in the current catalog snapshot.",
			},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "emi_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}
)

func RecordCalculation(outcome string, duration time.Duration) {
	Business.CalculationsTotal.WithLabelValues(outcome).Inc()
	Business.CalculationDuration.Observe(duration.Seconds())
}

func SetCatalogSize(n int) {
	Business.CatalogProducts.Set(float64(n))
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}
