package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/session"
	"github.com/FACorreiaa/go-petportal/internal/app/upstream"
	"github.com/FACorreiaa/go-petportal/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	upstream *upstream.Client
	sessions *session.Store
	router   http.Handler
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	s.upstream = upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger.Named("upstream"))
	s.sessions = session.NewStore(session.Options{
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.IsProduction(),
	})

	logger.Info("Upstream API configured",
		zap.String("base_url", cfg.Upstream.BaseURL),
		zap.Duration("timeout", cfg.Upstream.Timeout),
		zap.Duration("session_max_age", cfg.Session.MaxAge),
		zap.Strings("protected_prefixes", cfg.Session.ProtectedPrefixes))

	return s
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) GetUpstream() *upstream.Client {
	return s.upstream
}

func (s *Server) GetSessions() *session.Store {
	return s.sessions
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
