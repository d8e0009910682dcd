package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ledhub/ledhub-core/internal/auth"
	"github.com/ledhub/ledhub-core/internal/device"
	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
	"github.com/ledhub/ledhub-core/internal/infrastructure/database"
	"github.com/ledhub/ledhub-core/internal/infrastructure/logging"
	"github.com/ledhub/ledhub-core/internal/webui"
)

// Deps carries everything the HTTP server needs.
type Deps struct {
	Config   *config.Config
	Logger   *logging.Logger
	DB       *database.DB
	Users    *auth.UserRepository
	Sessions *auth.SessionRepository
	Signer   *auth.TokenSigner
	Tracker  *device.Tracker
	History  device.HistoryRepository
	Renderer *webui.Renderer
}

// Server is the LED Hub HTTP server.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	db       *database.DB
	users    *auth.UserRepository
	sessions *auth.SessionRepository
	signer   *auth.TokenSigner
	tracker  *device.Tracker
	history  device.HistoryRepository
	renderer *webui.Renderer
	httpSrv  *http.Server
}

// New creates a server from its dependencies.
func New(deps Deps) (*Server, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("config is required")
	case deps.Logger == nil:
		return nil, errors.New("logger is required")
	case deps.Users == nil:
		return nil, errors.New("user repository is required")
	case deps.Sessions == nil:
		return nil, errors.New("session repository is required")
	case deps.Signer == nil:
		return nil, errors.New("token signer is required")
	case deps.Tracker == nil:
		return nil, errors.New("device tracker is required")
	case deps.History == nil:
		return nil, errors.New("history repository is required")
	case deps.Renderer == nil:
		return nil, errors.New("renderer is required")
	}

	s := &Server{
		cfg:      deps.Config,
		logger:   deps.Logger.With("component", "api"),
		db:       deps.DB,
		users:    deps.Users,
		sessions: deps.Sessions,
		signer:   deps.Signer,
		tracker:  deps.Tracker,
		history:  deps.History,
		renderer: deps.Renderer,
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", deps.Config.API.Host, deps.Config.API.Port),
		Handler:      s.buildRouter(),
		ReadTimeout:  deps.Config.GetReadTimeout(),
		WriteTimeout: deps.Config.GetWriteTimeout(),
		IdleTimeout:  deps.Config.GetIdleTimeout(),
	}

	return s, nil
}

// Start begins serving HTTP requests. It blocks until the server stops;
// a graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpSrv.Addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// handleHealthz reports process and database health.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Error("health check failed", "error", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]string{"status": status})
}
