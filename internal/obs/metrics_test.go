package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/keystone-apparel/keystone/internal/obs"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *obs.Metrics

	assert.NotPanics(t, func() {
		m.SaleRecorded("tshirt", "card", "register", 9.99)
		m.Fulfilled(3)
		m.FulfillmentFailed("mark_sold")
		m.CacheLookup("weekly", true)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := obs.New("keystone", reg)

	m.SaleRecorded("tshirt", "card", "register", 9.99)
	m.SaleRecorded("tshirt", "cash", "register", 0)
	m.Fulfilled(3)
	m.CacheLookup("weekly", false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.SalesRecorded.WithLabelValues("tshirt", "register")), 0.0001)
	assert.InDelta(t, 9.99, testutil.ToFloat64(m.RevenueRecorded.WithLabelValues("card")), 0.0001)
	assert.InDelta(t, 3, testutil.ToFloat64(m.PresalesFulfilled), 0.0001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReportCache.WithLabelValues("weekly", "miss")), 0.0001)
}

func TestMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := obs.New("keystone", reg)
	second := obs.New("keystone", reg)

	second.Fulfilled(1)

	assert.InDelta(t, 1, testutil.ToFloat64(first.PresalesFulfilled), 0.0001)
}

func TestMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := obs.New("keystone", reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/sales/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReqTotal.WithLabelValues(http.MethodGet, "/sales/{id}", "418")), 0.0001)
}
