// Package server provides the HTTP REST API for the career profile
// service.
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

	"github.com/careeridream/backend/internal/config"
	"github.com/careeridream/backend/internal/db"
	"github.com/careeridream/backend/internal/drafts"
	"github.com/careeridream/backend/internal/llm"
	"github.com/careeridream/backend/internal/onboarding"
	"github.com/careeridream/backend/internal/pipeline"
	"github.com/careeridream/backend/internal/server/middleware"
	"github.com/careeridream/backend/internal/server/ratelimit"
	"github.com/careeridream/backend/internal/storage"
)

// Server is the HTTP server and its wired services.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	rateLimiter *ratelimit.Limiter

	onboarding *onboarding.Service
	pipeline   *pipeline.Service
	drafts     *drafts.Service
}

// New connects the database, builds the service graph, and wires the
// routes. The returned server owns the database connection.
func New(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	groq := llm.NewGroq(cfg.GroqAPIKey, cfg.GroqModel)

	s := &Server{
		db:          database,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		onboarding:  onboarding.NewService(database, storage.NewDiskStore(cfg.UploadDir)),
		pipeline:    pipeline.NewService(gemini),
		drafts:      drafts.NewService(database, groq),
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	auth := middleware.Auth(NewJWTService(jwtConfig).AsTokenValidator())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes(auth)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // completion calls block up to their timeout
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything except the health check sits
// behind the auth middleware.
func (s *Server) routes(auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("GET /profiles/me", s.handleGetProfile)
	api.HandleFunc("PATCH /profiles/me", s.handleUpdateProfile)
	api.HandleFunc("GET /profiles/me/onboarding", s.handleOnboardingStatus)
	api.HandleFunc("POST /profiles/me/onboarding", s.handleOnboardingSubmit)

	api.HandleFunc("POST /profiles/me/resume/parse", s.handleParseResume)
	api.HandleFunc("POST /profiles/me/resume/generate", s.handleGenerateResume)
	api.HandleFunc("POST /profiles/me/cover-letter/generate", s.handleGenerateCoverLetter)

	registerSectionRoutes(api, s)

	api.HandleFunc("GET /drafts", s.handleListDrafts)
	api.HandleFunc("POST /drafts", s.handleCreateDraft)
	api.HandleFunc("GET /drafts/{id}", s.handleGetDraft)
	api.HandleFunc("PATCH /drafts/{id}", s.handleUpdateDraft)
	api.HandleFunc("DELETE /drafts/{id}", s.handleDeleteDraft)

	mux.Handle("/", auth(api))
	return mux
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
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

// logIfInternal logs errors that map to a 500 and returns the status.
func (s *Server) logIfInternal(err error) int {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	return status
}

// extractClientID extracts the client identifier from the request.
// For now this is the IP from RemoteAddr; a trusted-proxy setup would
// read X-Forwarded-For instead.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": int(info.RetryAfter.Seconds()) + 1,
	})
}
