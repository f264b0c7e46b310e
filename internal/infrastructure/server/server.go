// Package server assembles the bridge: configuration, logging, metrics,
// registry, dispatcher, and the gin REST surface, with graceful shutdown.
package server

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayvor/assistant/core/internal/api/http"
	"github.com/ayvor/assistant/core/internal/api/middleware"
	"github.com/ayvor/assistant/core/internal/dispatch"
	"github.com/ayvor/assistant/core/internal/infrastructure/config"
	"github.com/ayvor/assistant/core/internal/infrastructure/logging"
	"github.com/ayvor/assistant/core/internal/infrastructure/monitoring"
	"github.com/ayvor/assistant/core/internal/registry"
	"github.com/ayvor/assistant/core/internal/safety"
	"github.com/ayvor/assistant/core/internal/scanner"
	"github.com/ayvor/assistant/core/internal/shared/types"
	"github.com/ayvor/assistant/core/internal/winbridge"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	http     *nethttp.Server
	registry *registry.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// Option customizes server assembly.
type Option func(*options)

type options struct {
	starter dispatch.ProcessStarter
	dirs    *dispatch.Dirs
}

// WithStarter overrides process launching, used by tests to avoid spawning
// real processes.
func WithStarter(s dispatch.ProcessStarter) Option {
	return func(o *options) { o.starter = s }
}

// WithDirs overrides the user folders actions operate on.
func WithDirs(d dispatch.Dirs) Option {
	return func(o *options) { o.dirs = &d }
}

// New assembles the bridge: scanner, registry, dispatcher, and REST surface.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing bridge",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Registry.StorePath),
	)

	metrics := monitoring.NewMetrics()

	appScanner := scanner.New(logger.Logger, scanner.Options{})
	appRegistry := registry.NewManager(logger.Logger, appScanner, cfg.Registry.StorePath, cfg.Registry.ScanDepth)
	if err := appRegistry.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize application registry: %w", err)
	}
	stats := appRegistry.Statistics()
	metrics.RegistryApps.Set(float64(stats.Total))
	logger.Info("Application registry ready", zap.Int("applications", stats.Total))

	validator := safety.Default()
	capturer := winbridge.NewCapturer(appRegistry)
	dirs := dispatch.DefaultDirs()
	if o.dirs != nil {
		dirs = *o.dirs
	}
	dispatcher := dispatch.New(logger.Logger, appRegistry, validator, capturer, o.starter, dirs)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	// Anything escaping the dispatcher's own recover boundary is a pipeline
	// bug; answer with the generic message, never internals.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("pipeline panic", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(nethttp.StatusInternalServerError, types.Err("Internal server error"))
	}))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := http.NewHandlers(logger.Logger, dispatcher, appRegistry, metrics)

	router.GET("/", handlers.Describe)
	router.GET("/health", handlers.Health)
	router.GET("/system/status", handlers.SystemStatus)
	router.POST("/action/execute", handlers.ExecuteAction)
	router.GET("/metrics", metrics.Handler())

	logger.Info("Bridge initialized")

	return &Server{
		router:   router,
		registry: appRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Router exposes the assembled engine for integration tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops serving.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.http = &nethttp.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Close drains in-flight requests and shuts the server down.
func (s *Server) Close() error {
	s.logger.Info("Shutting down bridge")

	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Shutdown failed", zap.Error(err))
			return err
		}
	}

	s.logger.Sync()
	return nil
}
