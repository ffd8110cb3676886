// Package api assembles the HTTP server over the decision engine.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cardwise-app/cardwise-backend/internal/api/handlers"
	"github.com/cardwise-app/cardwise-backend/internal/application/advisor"
	"github.com/cardwise-app/cardwise-backend/internal/application/service"
	"github.com/cardwise-app/cardwise-backend/internal/domain/catalog"
	"github.com/cardwise-app/cardwise-backend/internal/domain/simulator"
	"github.com/cardwise-app/cardwise-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Repo      storage.Repository
	Catalog   *catalog.Catalog
	Decisions *service.DecisionService
	Advisor   *advisor.Advisor
	Simulator *simulator.Generator
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	deps       Deps
}

// NewServer creates a new API server.
func NewServer(cfg Config, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		config: cfg,
		engine: engine,
		logger: logger,
		deps:   deps,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the underlying engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.config.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Accept", "Authorization", "Content-Type"}
	s.engine.Use(cors.New(corsConfig))

	s.engine.Use(s.requestLogger())
}

// requestLogger logs each request through the injected slog logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Check)

	api := s.engine.Group("/api")
	{
		catalogHandler := handlers.NewCatalogHandler(s.deps.Catalog)
		api.GET("/catalog", catalogHandler.List)
		api.GET("/catalog/search", catalogHandler.Search)

		cardsHandler := handlers.NewCardsHandler(s.deps.Repo, s.deps.Catalog)
		api.POST("/cards", cardsHandler.Create)
		api.GET("/cards", cardsHandler.List)
		api.GET("/cards/:id", cardsHandler.Get)
		api.DELETE("/cards/:id", cardsHandler.Delete)

		recommendHandler := handlers.NewRecommendHandler(s.deps.Decisions)
		api.POST("/recommend", recommendHandler.Recommend)

		txnHandler := handlers.NewTransactionsHandler(s.deps.Decisions, s.deps.Repo)
		api.POST("/transactions", txnHandler.Confirm)
		api.GET("/transactions", txnHandler.List)
		api.GET("/stats", txnHandler.Stats)

		if s.deps.Simulator != nil {
			simulateHandler := handlers.NewSimulateHandler(s.deps.Simulator, s.deps.Decisions)
			api.POST("/simulate", simulateHandler.Simulate)
		}

		if s.deps.Advisor != nil {
			explainHandler := handlers.NewExplainHandler(s.deps.Advisor, s.deps.Decisions)
			api.POST("/explain", explainHandler.Explain)
		}
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
