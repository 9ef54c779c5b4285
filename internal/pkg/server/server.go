package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/swastha/internal/pkg/logger"
)

// GracefulServer runs an echo server until a shutdown signal, then drains it
// and releases registered components.
type GracefulServer struct {
	echo            *echo.Echo
	logger          *logger.ZapLogger
	addr            string
	shutdownTimeout time.Duration
	components      *ShutdownManager
}

// NewGracefulServer creates a server bound to addr
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, addr string, shutdownTimeout time.Duration, components *ShutdownManager) *GracefulServer {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	if components == nil {
		components = NewShutdownManager(zapLogger)
	}
	return &GracefulServer{
		echo:            e,
		logger:          zapLogger,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		components:      components,
	}
}

// Start serves until SIGINT or SIGTERM
func (s *GracefulServer) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done or the listener fails
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("HTTP server failed", logger.Err(err))
			_ = s.shutdownComponents()
			return err
		}
		return s.shutdownComponents()
	case <-ctx.Done():
		s.logger.Info("Received shutdown signal")
	}

	return s.Shutdown()
}

// Shutdown drains in-flight requests then stops the registered components
func (s *GracefulServer) Shutdown() error {
	s.logger.Info("Shutting down server gracefully", logger.Duration("timeout", s.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
		errs = append(errs, err)
	}
	if err := s.components.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info("Server shutdown completed")
	return errors.Join(errs...)
}

func (s *GracefulServer) shutdownComponents() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.components.Shutdown(ctx)
}

// ShutdownManager collects cleanup functions for owned resources
type ShutdownManager struct {
	mu        sync.Mutex
	logger    *logger.ZapLogger
	names     []string
	functions []func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{logger: zapLogger}
}

// Register adds a named cleanup function. Functions run in reverse
// registration order so later resources close before what they depend on.
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.names = append(sm.names, name)
	sm.functions = append(sm.functions, fn)
}

// Shutdown runs every registered function, continuing past failures
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	names := append([]string(nil), sm.names...)
	functions := append([]func(context.Context) error(nil), sm.functions...)
	sm.mu.Unlock()

	var errs []error
	for i := len(functions) - 1; i >= 0; i-- {
		if err := functions[i](ctx); err != nil {
			sm.logger.Error("Error during component shutdown",
				logger.String("component", names[i]),
				logger.Err(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
