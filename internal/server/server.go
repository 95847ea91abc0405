// file: internal/server/server.go
// version: 1.3.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lmorel/bibsearch/internal/config"
	"github.com/lmorel/bibsearch/internal/metasearch"
	"github.com/lmorel/bibsearch/internal/metrics"
	"github.com/lmorel/bibsearch/internal/server/middleware"
	"github.com/lmorel/bibsearch/internal/sysinfo"
)

// Server exposes the meta-search service over HTTP.
type Server struct {
	cfg        config.ServerConfig
	svc        *metasearch.Service
	log        zerolog.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the server and wires up its routes.
func New(cfg config.ServerConfig, svc *metasearch.Service, log zerolog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(corsMiddleware())

	// Register metrics (idempotent)
	metrics.Register()

	s := &Server{
		cfg:    cfg,
		svc:    svc,
		log:    log,
		router: router,
	}
	s.setupRoutes()
	return s
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (both paths for compatibility)
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	if s.cfg.RateLimitRPS > 0 {
		api.Use(middleware.NewIPRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst).Middleware())
	}
	{
		api.GET("/search/isbn/:isbn", s.searchByISBN)
		api.GET("/search", s.searchByTitleAuthor)
		api.GET("/cache/stats", s.cacheStats)
		api.DELETE("/cache", s.clearCache)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"strategy":  s.svc.StrategyName(),
		"cache":     s.svc.CacheStats(),
		"memory":    sysinfo.Collect(),
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) searchByISBN(c *gin.Context) {
	isbn := strings.TrimSpace(c.Param("isbn"))
	if isbn == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "isbn is required"})
		return
	}

	results, ms := s.svc.SearchByISBN(c.Request.Context(), isbn)
	c.JSON(http.StatusOK, newSearchResponse(results, ms))
}

func (s *Server) searchByTitleAuthor(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	author := strings.TrimSpace(c.Query("author"))
	if title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title is required"})
		return
	}

	results, ms := s.svc.SearchByTitleAuthor(c.Request.Context(), title, author)
	c.JSON(http.StatusOK, newSearchResponse(results, ms))
}

func (s *Server) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.CacheStats())
}

func (s *Server) clearCache(c *gin.Context) {
	s.svc.ClearCache()
	c.Status(http.StatusNoContent)
}
