package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterOptions configures router construction.
type RouterOptions struct {
	// AuthMiddleware authenticates every request (except /healthz) and stores
	// the caller's email in context.
	AuthMiddleware func(http.Handler) http.Handler
}

// NewRouter constructs the API HTTP router. This is intentionally a thin
// adapter: handlers decode requests and delegate to the app services.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	if opts.AuthMiddleware != nil {
		r.Use(opts.AuthMiddleware)
	}

	// Health endpoint is deliberately unauthenticated (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/trips/{direction}", func(r chi.Router) {
		r.Post("/", s.handleCreateTrip)
		r.Post("/join", s.handleJoinTrip)
		r.Post("/search", s.handleSearchTrips)
		r.Delete("/{tripID}", s.handleDeleteTrip)
	})
	r.Post("/subscriptions/{direction}", s.handleSubscribe)
	r.Get("/me", s.handleGetMe)

	return r
}

// requestLogger logs one line per request at debug level.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
