// Package metrics expõe contadores de decisões de posicionamento e latência HTTP em formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"golayout/internal/domain"
)

// Resultados possíveis de uma decisão de posicionamento.
const (
	OutcomeAccepted = "accepted"
	OutcomeDegraded = "degraded"
	OutcomeRejected = "rejected"
)

// Recorder agrupa os coletores do serviço num registry próprio.
type Recorder struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	requests  *prometheus.HistogramVec
}

// NewRecorder cria e registra os coletores.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "golayout",
			Name:      "placement_decisions_total",
			Help:      "Decisões do motor de posicionamento por operação e resultado.",
		}, []string{"operation", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "golayout",
			Name:      "http_request_duration_seconds",
			Help:      "Latência das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	r.registry.MustRegister(
		r.decisions,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RecordDecision contabiliza o resultado de uma operação.
// err != nil conta como rejeição; status OK_WITH_WARNINGS como aceitação degradada.
func (r *Recorder) RecordDecision(operation string, status domain.UpdateStatus, err error) {
	outcome := OutcomeAccepted
	switch {
	case err != nil:
		outcome = OutcomeRejected
	case status == domain.StatusWithWarnings:
		outcome = OutcomeDegraded
	}
	r.decisions.WithLabelValues(operation, outcome).Inc()
}

// Decisions expõe o contador (usado em testes).
func (r *Recorder) Decisions() *prometheus.CounterVec { return r.decisions }

// Handler serve /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware mede a latência usando o template de rota do gorilla/mux.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, req)

		route := "unmatched"
		if current := mux.CurrentRoute(req); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		r.requests.WithLabelValues(route, req.Method, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
