package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/launchdock/backend/internal/api/http"
	"github.com/launchdock/backend/internal/api/middleware"
	"github.com/launchdock/backend/internal/api/ws"
	"github.com/launchdock/backend/internal/domain/launcher"
	"github.com/launchdock/backend/internal/domain/registry"
	"github.com/launchdock/backend/internal/domain/startup"
	"github.com/launchdock/backend/internal/domain/store"
	"github.com/launchdock/backend/internal/infrastructure/config"
	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/infrastructure/monitoring"
	"github.com/launchdock/backend/internal/shared/types"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router       *gin.Engine
	registry     *registry.Manager
	launcher     *launcher.Launcher
	orchestrator *startup.Orchestrator
	hub          *ws.Hub
	logger       *logging.Logger
	config       *config.Config
	metrics      *monitoring.Metrics

	cancelStartup context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing LaunchDock Server",
		zap.String("port", cfg.Server.Port),
		zap.String("host", cfg.Server.Host),
	)

	metrics := monitoring.NewMetrics()

	var st *store.Store
	if cfg.Storage.Dir != "" {
		st = store.New(cfg.Storage.Dir, logger)
	} else {
		s, err := store.NewDefault(logger)
		if err != nil {
			return nil, err
		}
		st = s
	}
	logger.Info("Config store ready", zap.String("path", st.Path()))

	reg := registry.NewManager(st, logger).WithMetrics(metrics)
	l := launcher.New(reg, launcher.NewController(), logger).WithMetrics(metrics)
	orchestrator := startup.New(reg, l, logger).WithMetrics(metrics)
	hub := ws.NewHub(logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(reg, l, orchestrator, hub, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Definition management
	router.GET("/apps", handlers.ListApps)
	router.POST("/apps", handlers.AddApp)
	router.PUT("/apps/:id", handlers.UpdateApp)
	router.DELETE("/apps/:id", handlers.RemoveApp)
	router.POST("/config/reset", handlers.ResetConfig)

	// Process lifecycle
	router.POST("/apps/:id/launch", handlers.LaunchApp)
	router.POST("/apps/:id/stop", handlers.StopApp)
	router.GET("/apps/:id/running", handlers.IsRunning)
	router.POST("/startup/launch", handlers.LaunchStartupApps)

	// WebSocket
	router.GET("/stream", hub.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:       router,
		registry:     reg,
		launcher:     l,
		orchestrator: orchestrator,
		hub:          hub,
		logger:       logger,
		config:       cfg,
		metrics:      metrics,
	}, nil
}

// Run starts the HTTP server, kicking off the boot-time launch sequence
// first when configured.
func (s *Server) Run() error {
	if s.config.Startup.LaunchOnBoot {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancelStartup = cancel
		go s.runStartup(ctx)
	}

	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) runStartup(ctx context.Context) {
	s.hub.Broadcast(types.Event{Type: types.EventStartupBegan, Timestamp: time.Now()})
	launched, err := s.orchestrator.Run(ctx)
	if err != nil {
		s.logger.Warn("Boot-time launch sequence ended early", zap.Error(err))
	}
	s.hub.Broadcast(types.Event{Type: types.EventStartupDone, Timestamp: time.Now()})
	s.logger.Info("Boot-time launch sequence finished", zap.Int("launched", launched))
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.cancelStartup != nil {
		s.cancelStartup()
	}

	s.logger.Sync()
	return nil
}
