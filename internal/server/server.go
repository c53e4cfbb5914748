// Package server runs the sampler and the HTTP exporter side by side.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sulphur/internal/config"
	"sulphur/internal/controllers"
	"sulphur/internal/middleware"
	"sulphur/internal/routes"
	"sulphur/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Service is one running exporter: a monitor, its sampler and its HTTP server.
type Service struct {
	cfg     config.ServerConfig
	monitor *services.ResourceMonitor
	logger  *slog.Logger
}

func New(cfg config.ServerConfig, monitor *services.ResourceMonitor, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, monitor: monitor, logger: logger}
}

// Run validates cfg, takes the first system sample, binds the listener and
// serves until a shutdown signal arrives or an activity fails. Any failure
// before serving starts is returned as is.
func Run(ctx context.Context, cfg config.ServerConfig, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("Starting", slog.Int("capacity", cfg.Capacity()), slog.Duration("interval", cfg.Interval()))

	monitor, err := services.NewResourceMonitor(ctx, cfg.Capacity(), services.NewHostReader())
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", cfg.Address, err)
	}
	logger.Info("Bound to socket", slog.String("address", ln.Addr().String()))

	return New(cfg, monitor, logger).Serve(ctx, ln)
}

// Router builds the HTTP handler. Streams opened through it end when ctx is
// cancelled.
func (s *Service) Router(ctx context.Context) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(s.logger),
		middleware.SecurityHeadersMiddleware(),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(s.cfg.RateLimit, s.cfg.RateBurst), s.logger),
	)

	routes.RegisterMetricsRoutes(r, controllers.NewMetricsController(s.monitor))
	routes.RegisterStreamRoutes(r, controllers.NewStreamController(ctx, s.monitor, s.cfg.Interval(), s.logger))
	routes.RegisterExporterRoutes(r, promhttp.HandlerFor(
		services.NewPrometheusRegistry(s.monitor),
		promhttp.HandlerOpts{},
	))

	return r
}

// Serve races the sampler, the HTTP server on ln and the shutdown-signal
// wait. Whichever returns first cancels the other two; the first error, if
// any, is the result.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return services.RunSampler(gctx, s.monitor, s.cfg.Interval(), s.logger.With(slog.String("component", "sampler")))
	})

	g.Go(func() error {
		defer cancel()
		return s.serveHTTP(gctx, ln)
	})

	g.Go(func() error {
		defer cancel()
		waitForSignal(gctx, s.logger)
		return nil
	})

	err := g.Wait()
	s.logger.Info("Server stopped")
	return err
}

func (s *Service) serveHTTP(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(ctx),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// waitForSignal blocks until SIGINT/SIGTERM or ctx is cancelled.
func waitForSignal(ctx context.Context, logger *slog.Logger) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	if ctx.Err() == nil {
		logger.Warn("Received shutdown signal, stopping the server")
	}
}
