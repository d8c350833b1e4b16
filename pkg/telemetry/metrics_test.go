package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSetStoreGauges(t *testing.T) {
	SetStoreGauges(3, 7)
	require.Equal(t, 3.0, testutil.ToFloat64(questionsGauge))
	require.Equal(t, 7.0, testutil.ToFloat64(repliesGauge))
}

func TestMiddlewareLabelsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/questions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}).Methods(http.MethodGet)

	counter := requestsTotal.WithLabelValues("/questions/{id}", "GET", "400")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions/9", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddlewareDefaultsTo200(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/questions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	counter := requestsTotal.WithLabelValues("/questions", "GET", "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
