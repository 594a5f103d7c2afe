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
	"strings"
	"syscall"
	"time"

	"github.com/briteco/briteroles/internal/config"
	"github.com/briteco/briteroles/internal/llm"
	"github.com/briteco/briteroles/internal/server/middleware"
	"github.com/briteco/briteroles/internal/server/ratelimit"
	"github.com/briteco/briteroles/internal/types"
)

// RoleStore is the persistence surface the handlers need. The GCS store
// implements it; tests substitute fakes.
type RoleStore interface {
	SaveDraft(ctx context.Context, doc *types.RoleDocument) (string, error)
	SaveRole(ctx context.Context, doc *types.RoleDocument) (string, error)
	ListDrafts(ctx context.Context) ([]types.RoleSummary, error)
	ListRoles(ctx context.Context) ([]types.RoleSummary, error)
	LoadDraft(ctx context.Context, file string) (*types.RoleDocument, error)
	LoadRole(ctx context.Context, file string) (*types.RoleDocument, error)
	DeleteDraft(ctx context.Context, file string) error
	DeleteRole(ctx context.Context, file string) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	llm         llm.Client
	store       RoleStore
	sessions    *SessionService
	authHandler *AuthHandler
	rateLimiter *ratelimit.Limiter
}

// New creates a new server instance. The llm client and store may be nil;
// the corresponding endpoints degrade per their documented semantics.
func New(cfg *config.Config, llmClient llm.Client, store RoleStore) *Server {
	s := &Server{
		cfg:   cfg,
		llm:   llmClient,
		store: store,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	secure := strings.HasPrefix(cfg.BaseURL, "https://")
	s.sessions = NewSessionService(config.NewSessionConfig(cfg), secure)
	s.authHandler = NewAuthHandler(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL, cfg.AllowedEmailDomain, s.sessions, secure)

	if s.authHandler == nil {
		log.Printf("[AUTH] GOOGLE_CLIENT_ID not set, all requests run as %s", cfg.DevIdentityEmail())
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	mux.HandleFunc("GET /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/callback", s.handleCallback)
	mux.HandleFunc("GET /auth/logout", s.handleLogout)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/config", s.handleConfig)

	api.HandleFunc("POST /api/generate-jd", s.handleGenerateJD)
	api.HandleFunc("POST /api/adapt-jd", s.handleAdaptJD)
	api.HandleFunc("POST /api/rewrite-section", s.handleRewriteSection)

	api.HandleFunc("POST /api/save-draft", s.handleSaveDraft)
	api.HandleFunc("GET /api/list-drafts", s.handleListDrafts)
	api.HandleFunc("GET /api/load-draft", s.handleLoadDraft)
	api.HandleFunc("DELETE /api/delete-draft", s.handleDeleteDraft)

	api.HandleFunc("POST /api/save-role", s.handleSaveRole)
	api.HandleFunc("GET /api/list-saved-roles", s.handleListRoles)
	api.HandleFunc("GET /api/load-saved-role", s.handleLoadRole)
	api.HandleFunc("DELETE /api/delete-saved-role", s.handleDeleteRole)

	mux.Handle("/api/", s.withAuth(api))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // generation calls can run long
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
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

	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withAuth requires a valid session on API routes. When OAuth is not
// configured every request runs under the fixed development identity.
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.authHandler == nil {
		devIdentity := &types.Identity{Email: s.cfg.DevIdentityEmail(), Name: "Local Dev"}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), devIdentity)))
		})
	}

	reject := func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
	}
	return middleware.RequireSession(s.sessions, reject)(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

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
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
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

// respondError writes a typed error with the status from HTTPStatus.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
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

// handleLogin redirects to Google's consent screen, or straight home when
// OAuth is not configured.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.authHandler == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.authHandler.Login(w, r)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.authHandler == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.authHandler.Callback(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s.authHandler == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.authHandler.Logout(w, r)
}
