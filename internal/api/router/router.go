package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "golayout/docs" // registra a especificação Swagger
	"golayout/internal/api/shelf"
	"golayout/internal/api/zone"
	"golayout/internal/domain"
	"golayout/internal/pkg/cache"
	"golayout/internal/pkg/logger"
	"golayout/internal/pkg/metrics"
	"golayout/internal/pkg/middleware"
)

// RateLimit configura o limitador global.
type RateLimit struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// Leituras são públicas; escritas exigem token com papel admin ou operator.
func NewRouter(zoneHandler *zone.Handler, shelfHandler *shelf.Handler, tokenSvc middleware.TokenService, cacheClient cache.Client, recorder *metrics.Recorder, limit RateLimit, log logger.Logger) http.Handler {
	r := mux.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(recorder.Middleware)
	r.Use(middleware.RateLimiter(cacheClient, limit.MaxRequests, limit.Period, log))

	// --- 2. Health Check, métricas e documentação ---
	r.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	r.Handle("/metrics", recorder.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	v1 := r.PathPrefix("/v1").Subrouter()

	// --- 3. Leituras públicas ---
	v1.HandleFunc("/zones", zoneHandler.ListZonesHandler).Methods(http.MethodGet)
	v1.HandleFunc("/zones/{id:[0-9]+}", zoneHandler.GetZoneHandler).Methods(http.MethodGet)
	v1.HandleFunc("/shelves", shelfHandler.ListShelvesHandler).Methods(http.MethodGet)
	v1.HandleFunc("/shelves/{id:[0-9]+}", shelfHandler.GetShelfHandler).Methods(http.MethodGet)

	// --- 4. Escritas protegidas ---
	editors := v1.NewRoute().Subrouter()
	editors.Use(middleware.NewAuthMiddleware(tokenSvc))
	editors.Use(middleware.PermissionMiddleware(domain.LayoutEditors...))

	editors.HandleFunc("/zones/root", zoneHandler.AddRootZoneHandler).Methods(http.MethodPost)
	editors.HandleFunc("/zones/child", zoneHandler.AddChildZoneHandler).Methods(http.MethodPost)
	editors.HandleFunc("/zones/root/{id:[0-9]+}", zoneHandler.UpdateRootZoneHandler).Methods(http.MethodPut)
	editors.HandleFunc("/zones/child/{id:[0-9]+}", zoneHandler.UpdateChildZoneHandler).Methods(http.MethodPut)
	editors.HandleFunc("/zones/{id:[0-9]+}", zoneHandler.DeleteZoneHandler).Methods(http.MethodDelete)

	editors.HandleFunc("/shelves", shelfHandler.AddShelfHandler).Methods(http.MethodPost)
	editors.HandleFunc("/shelves/{id:[0-9]+}/column/{columnId:[0-9]+}", shelfHandler.AssignShelfToColumnHandler).Methods(http.MethodPatch)
	editors.HandleFunc("/shelves/{id:[0-9]+}", shelfHandler.UpdateShelfHandler).Methods(http.MethodPut)
	editors.HandleFunc("/shelves/{id:[0-9]+}/occupancy", shelfHandler.SetShelfOccupancyHandler).Methods(http.MethodPatch)
	editors.HandleFunc("/shelves/{id:[0-9]+}", shelfHandler.DeleteShelfHandler).Methods(http.MethodDelete)

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
