// Package server provides the HTTP REST API for the Pathify backend.
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

	"github.com/google/uuid"

	"github.com/pathify/pathify-backend/internal/config"
	"github.com/pathify/pathify-backend/internal/db"
	"github.com/pathify/pathify-backend/internal/llm"
	"github.com/pathify/pathify-backend/internal/rendering"
	"github.com/pathify/pathify-backend/internal/server/middleware"
	"github.com/pathify/pathify-backend/internal/server/ratelimit"
	"github.com/pathify/pathify-backend/internal/sheets"
	"github.com/pathify/pathify-backend/internal/types"
)

// Store is the persistence surface the handlers depend on.
// *db.DB satisfies it; tests substitute an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error
	CreateDocument(ctx context.Context, collection string, record any) (uuid.UUID, error)
	CountDocuments(ctx context.Context, collection string) (int, error)
	ListDocuments(ctx context.Context, collection string, limit int) ([]json.RawMessage, error)
	ListCollections(ctx context.Context) ([]string, error)
	FindTemplate(ctx context.Context, career string) (*types.CareerTemplate, error)
	UpsertTemplate(ctx context.Context, t *types.CareerTemplate) error
	ListTemplates(ctx context.Context) ([]db.TemplateSummary, error)
}

// Mirror is the optional spreadsheet mirror. Appends are best effort and
// never fail the request.
type Mirror interface {
	Enabled() bool
	AppendWaitlist(ctx context.Context, entry *types.WaitlistEntry) bool
	AppendContact(ctx context.Context, msg *types.ContactMessage) bool
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	database    *db.DB
	sheet       Mirror
	llm         llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	admin       *config.AdminConfig

	// renderPDF is swappable so handler tests run without a browser.
	renderPDF func(ctx context.Context, rm *types.Roadmap, language string) ([]byte, error)
}

// Config holds server configuration
type Config struct {
	Port                     int
	DatabaseURL              string
	GoogleSheetID            string
	GoogleServiceAccountJSON string
	GeminiAPIKey             string
	GeminiModel              string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		store:     database,
		database:  database,
		renderPDF: rendering.RoadmapPDF,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Optional Google Sheets mirror
	sheet, err := sheets.New(context.Background(), cfg.GoogleServiceAccountJSON, cfg.GoogleSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	s.sheet = sheet

	// Optional Gemini overview client
	gemini, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("Gemini client disabled: %v", err)
	} else if gemini != nil {
		s.llm = gemini
	}

	// Admin credential + JWT service. Admin routes stay registered but
	// return 503 until both are configured.
	adminConfig, err := config.NewAdminConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin config: %w", err)
	}
	s.admin = adminConfig

	if adminConfig.Enabled() {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for PDF rendering
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /test", s.handleDiagnostics)
	mux.HandleFunc("GET /schema", s.handleSchema)

	// Waitlist endpoints
	mux.HandleFunc("POST /api/waitlist", s.handleAddWaitlist)
	mux.HandleFunc("GET /api/waitlist/stats", s.handleWaitlistStats)

	// Contact endpoint
	mux.HandleFunc("POST /api/contact", s.handleContact)

	// Assessment and roadmap endpoints
	mux.HandleFunc("POST /api/assessment", s.handleAssessment)
	mux.HandleFunc("POST /api/roadmap", s.handleRoadmap)
	mux.HandleFunc("POST /api/pdf", s.handleRoadmapPDF)

	// Admin endpoints (JWT-guarded except login)
	mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)
	mux.Handle("POST /api/admin/templates", s.adminOnly(http.HandlerFunc(s.handleUpsertTemplate)))
	mux.Handle("GET /api/admin/templates", s.adminOnly(http.HandlerFunc(s.handleListTemplates)))

	// Dashboard endpoints
	mux.HandleFunc("GET /api/student/{email}/overview", s.handleStudentOverview)
	mux.HandleFunc("GET /api/parent/{email}/overview", s.handleParentOverview)

	return mux
}

// adminOnly wraps a handler with bearer-token admin authentication.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, http.StatusServiceUnavailable, "Admin access is not configured")
		})
	}
	return middleware.AdminMiddleware(s.jwtService.AsTokenValidator())(next)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.llm != nil {
		if err := s.llm.Close(); err != nil {
			log.Printf("Error closing Gemini client: %v", err)
		}
	}

	s.database.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
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

// handleRoot returns the app banner.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"app":    "Pathify AI Backend",
		"status": "ok",
	})
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

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
