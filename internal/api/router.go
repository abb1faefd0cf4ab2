// Package api exposes the engine over JSON/HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"solar_yield/internal/log"
	"solar_yield/internal/service"
)

// Handlers serves the REST endpoints.
type Handlers struct {
	svc *service.Service
	log *zap.SugaredLogger
}

func NewHandlers(svc *service.Service, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{svc: svc, log: log.OrNop(logger)}
}

// NewRouter builds the HTTP routes. ws may be nil when the WebSocket
// transport is disabled.
func NewRouter(h *Handlers, ws http.Handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)
	apiRouter.HandleFunc("/aggregate", h.Aggregate).Methods(http.MethodPost)
	apiRouter.HandleFunc("/optimize/day", h.OptimizeDay).Methods(http.MethodPost)
	apiRouter.HandleFunc("/optimize/period", h.OptimizePeriod).Methods(http.MethodPost)
	apiRouter.HandleFunc("/weather", h.Weather).Methods(http.MethodGet)
	apiRouter.HandleFunc("/time-correction", h.TimeCorrection).Methods(http.MethodGet)

	if ws != nil {
		router.Handle("/ws", ws)
	}
	return router
}
