// Package server is the thin HTTP surface over the confluence
// engine. Routing, CORS and serialization live here; nothing in this
// package computes anything.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxconfluence/internal/model"
	"fxconfluence/internal/scheduler"
)

// Server exposes the scan results over HTTP.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	sched      *scheduler.Scheduler
	logger     zerolog.Logger
}

// New builds the server. The scheduler supplies cached snapshots; a
// request arriving before the first scan triggers one inline.
func New(addr string, sched *scheduler.Scheduler) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		sched:  sched,
		logger: log.With().Str("component", "server").Logger(),
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/api/confluence", s.handleConfluence)
	return s
}

// Run blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfluence(c *gin.Context) {
	snap := s.sched.Latest()
	if snap == nil {
		snap = s.sched.RunNow()
	}

	flat := make([]model.Flat, len(snap.Records))
	for i, rec := range snap.Records {
		flat[i] = rec.Flatten()
	}
	c.JSON(http.StatusOK, gin.H{
		"generated_at": snap.At,
		"results":      flat,
	})
}
