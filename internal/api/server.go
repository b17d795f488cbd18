// Package api exposes the computed profiles over HTTP. Handlers recompute
// from the loaded records on every request; the datasets are daily batches,
// small enough that caching would only add staleness questions.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"energy-value-lab/internal/config"
	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/ingest"
	"energy-value-lab/internal/observability"
)

// Server holds the loaded datasets and the HTTP machinery around them.
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *gin.Engine

	prices []domain.PriceRecord
	gen    []domain.GenRecord
}

// NewServer loads both canonical datasets and wires the routes. A dataset
// that fails to load is a startup error, not a per-request one.
func NewServer(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	prices, err := ingest.ReadAllPrices(cfg.Data.PriceCSV)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	gen, err := ingest.ReadAllGen(cfg.Data.GenCSV)
	if err != nil {
		return nil, fmt.Errorf("load generation: %w", err)
	}
	log.Info().Int("prices", len(prices)).Int("generation", len(gen)).Msg("datasets loaded")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{cfg: cfg, log: log, prices: prices, gen: gen}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/profile/price", s.priceProfile)
		api.GET("/profile/gen", s.genProfile)
		api.GET("/value", s.valueProfile)
	}

	if s.cfg.Metrics.Enabled {
		router.GET(s.cfg.Metrics.Path, gin.WrapH(observability.Handler()))
	}
	return router
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
	s.log.Info().Str("addr", addr).Msg("starting server")
	return srv.ListenAndServe()
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
