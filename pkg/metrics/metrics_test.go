package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/helmet-store/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	mux := chi.NewRouter()
	mux.Use(metrics.Middleware())
	mux.Delete("/delete/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("DELETE", "/delete/{id}", "404"))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/delete/77", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("DELETE", "/delete/{id}", "404"))

	assert.Equal(t, before+1, after)
}

func TestObserveDBQueryOutcome(t *testing.T) {
	err := errors.New("boom")
	metrics.ObserveDBQuery("sql", "test_op", time.Now(), &err)
	metrics.ObserveDBQuery("sql", "test_op", time.Now(), nil)

	assert.True(t, metrics.DBQueryDuration.DeleteLabelValues("sql", "test_op", "error"))
	assert.True(t, metrics.DBQueryDuration.DeleteLabelValues("sql", "test_op", "ok"))
}

func TestHandlerServesRegistry(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "helmet_store_http_requests_in_flight"))
}
