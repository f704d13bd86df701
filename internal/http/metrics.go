package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// appMetrics tracks application-level counters for the metrics endpoint.
type appMetrics struct {
	startTime     time.Time
	totalRequests int64
}

func newAppMetrics() *appMetrics {
	return &appMetrics{startTime: time.Now()}
}

func (m *appMetrics) countRequest() {
	atomic.AddInt64(&m.totalRequests, 1)
}

// handleMetrics reports application and security counters in plain text
// Prometheus exposition format.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	totalRequests := atomic.LoadInt64(&s.appMetrics.totalRequests)
	rateLimitHits := s.metrics.RateLimitHits()
	activeClients := s.rateLimiter.activeClients()
	cachedTables := s.store.CacheLen()
	uptime := time.Since(s.appMetrics.startTime)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", totalRequests)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total requests rejected by the rate limiter\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitHits)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", activeClients)

	fmt.Fprintf(w, "# HELP cached_tables Currently memoized dataset windows\n")
	fmt.Fprintf(w, "# TYPE cached_tables gauge\n")
	fmt.Fprintf(w, "cached_tables %d\n\n", cachedTables)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}
