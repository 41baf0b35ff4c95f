// Package http exposes the clinic's financial reporting API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/fernandoagad/rasma-sub000/internal/middleware/ratelimit"
	"github.com/fernandoagad/rasma-sub000/internal/middleware/security"
	"github.com/fernandoagad/rasma-sub000/internal/middleware/trace"
	"github.com/fernandoagad/rasma-sub000/internal/services"
)

type Server struct {
	http.Server
	finance    *services.FinanceService
	adminToken string

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server.
func NewServer(addr string, finance *services.FinanceService, adminToken string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		finance:    finance,
		adminToken: adminToken,
		limiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/finance/overview", s.handleOverview)
	mux.HandleFunc("/api/finance/initial-balance", s.handleInitialBalance)
	mux.HandleFunc("/api/finance/export", s.handleExport)

	traced := trace.NewMiddleware(extractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.limiter.Middleware(extractClientIP, nil)

	s.Server.Addr = addr
	s.Server.Handler = traced.Middleware(headers.Middleware(limited(mux)))
	s.Server.ReadHeaderTimeout = 5 * time.Second
	s.Server.ReadTimeout = 15 * time.Second
	s.Server.WriteTimeout = 30 * time.Second
	s.Server.IdleTimeout = 60 * time.Second

	return s
}

// Shutdown stops the rate limiter's cleanup goroutine and drains the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// extractClientIP resolves the client address, preferring proxy
// headers over the socket peer.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
