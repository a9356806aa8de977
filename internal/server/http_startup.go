package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumescore/internal/observability"
)

// Start runs the HTTP server until SIGINT or SIGTERM, then shuts it
// down gracefully along with the storage and AI collaborators it owns.
func (s *Server) Start() error {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)
	om, err := observability.NewManager(obsConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(ctx); err != nil {
			s.Logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:      om.HTTPMiddleware()(s.setupRoutes(om)),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}

	s.displayServerInfo()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		s.Logger.Info("Received shutdown signal, starting graceful shutdown",
			"signal", sig.String())
		return s.shutdown(httpServer)
	}
}

// shutdown drains in-flight requests and closes owned resources. The
// store and AI service are closed here, not by the CLI layer.
func (s *Server) shutdown(httpServer *http.Server) error {
	timeout := s.AppConfig.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// In-flight handlers still persist results and call the AI service,
	// so the drain must complete before either is closed.
	s.Logger.Info("Shutting down HTTP server...")
	drainErr := httpServer.Shutdown(shutdownCtx)
	if drainErr != nil {
		s.Logger.LogError(drainErr, "Failed to shutdown server gracefully, forcing close")
		drainErr = httpServer.Close()
	}

	if s.RateLimiter != nil {
		s.RateLimiter.Close()
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close storage")
		}
	}
	if s.AIService != nil {
		if err := s.AIService.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close AI service")
		}
	}

	if drainErr == nil {
		s.Logger.Info("Server shutdown completed successfully")
	}
	return drainErr
}
