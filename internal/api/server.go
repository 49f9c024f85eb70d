// Package api assembles the gin server for the review backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerview/ledgerview/internal/api/handlers"
	"github.com/ledgerview/ledgerview/internal/api/middleware"
	"github.com/ledgerview/ledgerview/internal/directory"
	"github.com/ledgerview/ledgerview/internal/review"
	"github.com/ledgerview/ledgerview/internal/upload"
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

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// Services bundles everything the handlers need.
type Services struct {
	Directory *directory.Service
	Session   *review.Session
	Uploads   *upload.Service
}

// NewServer creates a new API server.
func NewServer(cfg Config, services Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		config: cfg,
		router: router,
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes(services)

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(services Services) {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.GET("/health", healthHandler.Get)

	api := s.router.Group("/api")
	{
		accountsHandler := handlers.NewAccountsHandler(services.Directory, services.Session)
		api.GET("/accounts", accountsHandler.List)
		api.POST("/accounts", accountsHandler.Create)
		api.POST("/accounts/select", accountsHandler.Select)

		viewHandler := handlers.NewViewHandler(services.Session, services.Directory)
		api.GET("/view", viewHandler.Get)
		api.POST("/view/refresh", viewHandler.Refresh)
		api.POST("/view/filters", viewHandler.SetFilters)
		api.DELETE("/view/filters", viewHandler.ClearFilters)
		api.POST("/view/page", viewHandler.SetPage)
		api.POST("/view/page-size", viewHandler.SetPageSize)

		uploadHandler := handlers.NewUploadHandler(services.Uploads, services.Directory)
		api.POST("/upload", uploadHandler.Upload)
	}
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("api server listening", slog.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
