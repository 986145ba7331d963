package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/sync/errgroup"

	"seqapi/internal/config"
	"seqapi/internal/logging"
)

// Server represents the HTTP API server. One Server is created at startup
// and owns the listener for the lifetime of the process.
type Server struct {
	router  *http.ServeMux
	server  *http.Server
	addr    string
	logger  *logging.Logger
	metrics *MetricsCollector

	maxCount        int
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	startTime       time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *logging.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	s := &Server{
		addr:            cfg.Server.Addr(),
		logger:          logger,
		router:          http.NewServeMux(),
		metrics:         NewMetricsCollector(),
		maxCount:        cfg.Limits.MaxCount,
		maxBodyBytes:    cfg.Server.MaxBodyBytes,
		shutdownTimeout: cfg.Server.ShutdownTimeout(),
		startTime:       time.Now(),
	}

	// Register routes
	s.registerRoutes()

	handler := s.applyMiddleware(s.router, cfg.Server.Compression)
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  cfg.Server.IdleTimeout(),
	}

	return s
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.addr
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or serving fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", map[string]interface{}{
			"addr": ln.Addr().String(),
		})
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully", nil)
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler, compress bool) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = MetricsMiddleware(s.metrics)(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	if compress {
		handler = gzhttp.GzipHandler(handler)
	}
	return handler
}
