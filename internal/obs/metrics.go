// Package obs holds the Prometheus collectors for the register and its HTTP surface.
package obs

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the domain and HTTP collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SalesRecorded       *prometheus.CounterVec
	RevenueRecorded     *prometheus.CounterVec
	PresalesCreated     *prometheus.CounterVec
	PresalesFulfilled   prometheus.Counter
	FulfillmentFailures *prometheus.CounterVec
	ReportCache         *prometheus.CounterVec
	ImportedRows        *prometheus.CounterVec

	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// New builds the collectors under namespace and registers them with reg.
// Collectors already registered under the same name are reused.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		SalesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Sale line items written, by product type and source.",
		}, []string{"product_type", "source"}),
		RevenueRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_recorded_total",
			Help:      "Revenue of recorded sale line items in dollars.",
		}, []string{"payment_method"}),
		PresalesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presales_created_total",
			Help:      "Presale line items written, by product type.",
		}, []string{"product_type"}),
		PresalesFulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presales_fulfilled_total",
			Help:      "Presales promoted to sales.",
		}),
		FulfillmentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presale_fulfillment_failures_total",
			Help:      "Failed fulfillment batches, by the step that failed.",
		}, []string{"stage"}),
		ReportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Report cache lookups by report and result.",
		}, []string{"report", "result"}),
		ImportedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Rows seen by the CSV importer, by outcome.",
		}, []string{"result"}),
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}

	register(reg, &m.SalesRecorded)
	register(reg, &m.RevenueRecorded)
	register(reg, &m.PresalesCreated)
	register(reg, &m.PresalesFulfilled)
	register(reg, &m.FulfillmentFailures)
	register(reg, &m.ReportCache)
	register(reg, &m.ImportedRows)
	register(reg, &m.ReqTotal)
	register(reg, &m.ReqDur)
	register(reg, &m.InFlight)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c *C) {
	err := reg.Register(*c)
	if err == nil {
		return
	}

	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		panic(fmt.Errorf("register collector: %w", err))
	}

	if existing, ok := are.ExistingCollector.(C); ok {
		*c = existing
	}
}

func (m *Metrics) SaleRecorded(productType, paymentMethod, source string, price float64) {
	if m == nil {
		return
	}

	m.SalesRecorded.WithLabelValues(productType, source).Inc()
	m.RevenueRecorded.WithLabelValues(paymentMethod).Add(max(price, 0))
}

func (m *Metrics) PresaleCreated(productType string) {
	if m == nil {
		return
	}

	m.PresalesCreated.WithLabelValues(productType).Inc()
}

func (m *Metrics) Fulfilled(n int) {
	if m == nil {
		return
	}

	m.PresalesFulfilled.Add(float64(n))
}

func (m *Metrics) FulfillmentFailed(stage string) {
	if m == nil {
		return
	}

	m.FulfillmentFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) CacheLookup(report string, hit bool) {
	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.ReportCache.WithLabelValues(report, result).Inc()
}

func (m *Metrics) RowsImported(result string, n int) {
	if m == nil || n == 0 {
		return
	}

	m.ImportedRows.WithLabelValues(result).Add(float64(n))
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
