// Package api provides the Math Forest JSON HTTP API.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathforest/internal/auth"
)

// Options configure a Server.
type Options struct {
	Timeout time.Duration
	Metrics bool
	// Registerer and Gatherer back /metrics; nil uses the Prometheus
	// default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
}

// Server is the Math Forest HTTP API server.
type Server struct {
	auth     *auth.Service
	games    *Registry
	opts     Options
	log      *slog.Logger
	requests *prometheus.CounterVec
}

// NewServer creates a server authenticating with svc and serving games.
func NewServer(svc *auth.Service, games *Registry, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		auth:  svc,
		games: games,
		opts:  opts,
		log:   log.With("component", "api"),
	}
	if opts.Metrics {
		s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mathforest",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"})
		opts.Registerer.MustRegister(s.requests)
	}
	return s
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))
	r.Use(s.accessLog)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignUp)
			r.Post("/login", s.handleLogin)
			r.Post("/confirm", s.handleConfirm)
			r.With(s.requireAuth).Get("/session", s.handleSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/profile", s.handleProfile)
			r.Put("/profile/name", s.handleSetName)
			r.Post("/profile/reset", s.handleReset)
			r.Get("/home", s.handleHome)
			r.Get("/save-status", s.handleSaveStatus)

			r.Get("/practice", s.handleGetPractice)
			r.Post("/practice", s.handleStartPractice)
			r.Post("/practice/answer", s.handleAnswer)
			r.Post("/practice/continue", s.handleContinue)
			r.Post("/practice/claim", s.handleClaim)
			r.Post("/practice/end", s.handleEndPractice)

			r.Get("/boss", s.handleGetBoss)
			r.Post("/boss", s.handleStartBoss)
			r.Post("/boss/fight", s.handleFight)
			r.Post("/boss/answer", s.handleBossAnswer)
		})
	})

	if s.opts.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// accessLog logs each request and counts it by route pattern.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		if s.requests != nil {
			s.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		}
		s.log.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"status":  status,
		},
	})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// corsMiddleware adds CORS headers for browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
