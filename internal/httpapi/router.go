// Package httpapi exposes the analytics view models over HTTP. It is a thin
// JSON surface over the engine; all scope and metric semantics live below.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/engine"
)

// Router is the HTTP API router for the analytics engine.
type Router struct {
	engine *engine.Engine
	log    *zap.Logger
	mux    *chi.Mux
}

// NewRouter creates the router with its middleware stack and routes.
func NewRouter(e *engine.Engine, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{
		engine: e,
		log:    log,
		mux:    chi.NewRouter(),
	}

	r.mux.Use(chimiddleware.Recoverer)
	r.mux.Use(chimiddleware.Timeout(30 * time.Second))
	r.mux.Use(requestID)
	r.mux.Use(r.requestLogger)
	r.mux.Use(chimiddleware.Heartbeat("/ping"))

	r.mux.Route("/v1", func(v1 chi.Router) {
		v1.Get("/stats", r.handleStats)
		v1.Get("/branches", r.handleBranches)
		v1.Get("/trend", r.handleTrend)
		v1.Get("/members/{memberID}", r.handleMember)
		v1.Get("/dashboard", r.handleDashboard)
	})
	r.mux.Get("/healthz", r.handleHealth)

	return r
}

// Handler returns the HTTP handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// requestLogger logs one line per request with latency and status.
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		r.log.Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestIDFrom(req)),
		)
	})
}

// handleHealth reports liveness.
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
