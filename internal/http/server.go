// Package http wires the dashboard API: it parses filter parameters,
// drives the store and the aggregators, and shapes the JSON the
// frontend charts consume.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/store"
	appweb "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/web"
)

// Server serves the dashboard UI and its JSON API.
type Server struct {
	http.Server

	store     *store.Store
	templates *template.Template
	logger    *applog.Logger
	reqLog    *applog.StructuredLogger

	rateLimiter  *rateLimiter
	metrics      *securityMetrics
	appMetrics   *appMetrics
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, st *store.Store, logger *applog.Logger) *Server {
	s := &Server{
		store:       st,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		reqLog:      applog.NewStructuredLogger(logger),
		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
		appMetrics:  newAppMetrics(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(applog.Middleware(logger))
	r.Use(applog.RequestIDMiddleware(requestID))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.withSecurityHeaders)

	r.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/series", s.handleSeries)
			r.Get("/resolution-by-month", s.handleResolutionByMonth)
			r.Get("/categories", s.handleCategories)
			r.Get("/map", s.handleMap)
			r.Get("/terms", s.handleTerms)
		})
		r.Get("/services", s.handleServices)
	})

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/", s.handleIndex)

	// Static assets served from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		})
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops the server and its cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to API responses.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		s.appMetrics.countRequest()

		s.reqLog.LogHTTPStart(r.Context(), r, clientIP)

		if !s.rateLimiter.allow(clientIP, s.metrics) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https://*.tile.openstreetmap.org; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.reqLog.LogHTTPEnd(r.Context(), r, rw.statusCode,
			time.Since(start).Milliseconds(), clientIP)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestID creates a unique request ID for tracing.
func requestID(_ *http.Request) string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
