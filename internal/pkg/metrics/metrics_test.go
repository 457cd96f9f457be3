package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"golayout/internal/domain"
)

func TestRecordDecision(t *testing.T) {
	r := NewRecorder()

	r.RecordDecision("update_root_zone", domain.StatusOK, nil)
	r.RecordDecision("update_root_zone", domain.StatusWithWarnings, nil)
	r.RecordDecision("update_root_zone", domain.StatusWithWarnings, nil)
	r.RecordDecision("add_root_zone", "", errors.New("sobreposição"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Decisions().WithLabelValues("update_root_zone", OutcomeAccepted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Decisions().WithLabelValues("update_root_zone", OutcomeDegraded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Decisions().WithLabelValues("add_root_zone", OutcomeRejected)))
}

func TestMiddleware_ObservesRouteTemplate(t *testing.T) {
	r := NewRecorder()

	router := mux.NewRouter()
	router.Use(r.Middleware)
	router.HandleFunc("/v1/zones/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	router.Handle("/metrics", r.Handler())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/zones/42", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(r.requests))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `golayout_http_request_duration_seconds_count{method="GET",route="/v1/zones/{id}",status="404"} 1`)
}
