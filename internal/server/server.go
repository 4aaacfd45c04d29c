package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/job-assessor/internal/config"
	"github.com/jonathan/job-assessor/internal/server/middleware"
	"github.com/jonathan/job-assessor/internal/server/ratelimit"
	"github.com/jonathan/job-assessor/internal/session"
)

// Server is the HTTP server exposing the assessor operations.
type Server struct {
	httpServer  *http.Server
	sessions    *session.Manager
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration. Sessions must be wired to a store and
// an adviser by the caller.
type Config struct {
	Port      int
	Sessions  *session.Manager
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
}

// New creates a server and its router.
func New(cfg Config) (*Server, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("server requires a session manager")
	}
	jwtCfg := cfg.JWT
	if jwtCfg == nil {
		loaded, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		jwtCfg = loaded
	}

	s := &Server{
		sessions:    cfg.Sessions,
		jwtService:  NewJWTService(jwtCfg),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protected := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, auth(handler))
	}

	protected("POST /auth/logout", s.handleLogout)
	protected("GET /me", s.handleMe)

	// Identity
	protected("POST /me/profiles", s.handleAddProfile)
	protected("DELETE /me/profiles/{id}", s.handleRemoveProfile)
	protected("PATCH /me/profiles/active", s.handleUpdateActiveProfile)
	protected("PUT /me/profiles/active/select", s.handleSelectProfile)
	protected("POST /me/profiles/active/extract", s.handleExtractProfile)
	protected("PATCH /me/identity", s.handleUpdateIdentity)

	// Leads
	protected("POST /jobs/analyze", s.handleAnalyze)
	protected("GET /jobs", s.handleListJobs)
	protected("GET /jobs/{id}", s.handleGetJob)
	protected("PATCH /jobs/{id}/status", s.handleSetStatus)
	protected("DELETE /jobs", s.handleBulkDelete)
	protected("DELETE /jobs/{id}", s.handleDeleteJob)
	protected("POST /jobs/{id}/messages", s.handleAddMessage)
	protected("POST /jobs/{id}/suggest", s.handleSuggest)
	protected("PUT /jobs/{id}/proposal", s.handleSaveProposal)
	protected("POST /jobs/{id}/proposal/regenerate", s.handleRegenerate)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// session opens the per-request session for the authenticated account.
func (s *Server) session(r *http.Request) (*session.Session, error) {
	username, err := middleware.GetUsername(r)
	if err != nil {
		return nil, err
	}
	return s.sessions.Open(r.Context(), username)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit throttles per client IP; the model-backed routes run under
// tight buckets.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds()+1)))
			}
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps an operation error to its response.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %v", err)
	}
	s.errorResponse(w, status, userMessage(err))
}

// decode reads a JSON request body into dst.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
