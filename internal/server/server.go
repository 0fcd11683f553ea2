// Package server provides the HTTP API for scanning documents into the candidate spreadsheet.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/pipeline"
	"github.com/y4jaiops/y4j-YouthScan/internal/server/middleware"
	"github.com/y4jaiops/y4j-YouthScan/internal/server/ratelimit"
	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

// DocumentFetcher downloads a document from a Drive link.
type DocumentFetcher interface {
	Fetch(ctx context.Context, link string) (types.DocumentBlob, error)
}

// Cleaner removes spreadsheets owned by the service identity.
type Cleaner interface {
	ListOwned(ctx context.Context) ([]sheets.File, error)
	DeleteAllOwned(ctx context.Context) (sheets.CleanupReport, error)
}

// Config holds server configuration
type Config struct {
	Port    int
	Columns types.ColumnSpec
	// JWT enables the admin endpoints. They answer 503 when it is nil.
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// Deps are the collaborators behind the endpoints. Drive and Cleaner are optional.
type Deps struct {
	Orchestrator *pipeline.Orchestrator
	Drive        DocumentFetcher
	Cleaner      Cleaner
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	columns     types.ColumnSpec
	deps        Deps
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if err := cfg.Columns.Validate(); err != nil {
		return nil, fmt.Errorf("default columns: %w", err)
	}

	s := &Server{
		columns:     cfg.Columns,
		deps:        deps,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      logging.OrNop(cfg.Logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("POST /export", s.handleExport)

	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
		requireOperator := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
		mux.Handle("POST /admin/cleanup", requireOperator(http.HandlerFunc(s.handleCleanup)))
	} else {
		mux.HandleFunc("POST /admin/cleanup", func(w http.ResponseWriter, _ *http.Request) {
			s.errorResponse(w, http.StatusServiceUnavailable, "admin endpoints are disabled (ADMIN_JWT_SECRET is not set)")
		})
	}

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      3 * time.Minute, // model calls are slow
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging tags each request with an id and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// requestLogger returns the server logger tagged with the request id.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return s.logger.With(zap.String("request_id", id))
	}
	return s.logger
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
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// failed reports err with the status it maps to.
func (s *Server) failed(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	log := s.requestLogger(r)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("request rejected", zap.Int("status", status), zap.Error(err))
	}
	s.jsonResponse(w, status, toErrorResponse(err))
}

// clientID identifies the caller by IP address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if seconds := int(info.RetryAfter.Seconds()); seconds > 0 {
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
