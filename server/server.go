package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"greeter-proxy/contract"
	"greeter-proxy/observability"
	"greeter-proxy/services"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var _ contract.Worker = (*Server)(nil)

type Config struct {
	Host            string
	Port            int
	MaxBodyLength   int
	ShutdownTimeout time.Duration
}

// Server is the inbound transport boundary. It accepts the gateway webhook
// and always acknowledges well-formed requests with an empty TwiML response.
type Server struct {
	log    *slog.Logger
	relay  services.IRelayService
	stats  *observability.RelayStats
	config Config
	router *gin.Engine
}

func NewServer(log *slog.Logger, relay services.IRelayService, stats *observability.RelayStats, config Config) *Server {
	s := &Server{log: log, relay: relay, stats: stats, config: config}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log))

	router.POST("/sms", s.handleSMS)
	router.GET("/healthz", s.handleHealth)
	router.GET("/stats", s.handleStats)
	return router
}

// Run serves until ctx is canceled, then drains in-flight requests.
// A listener failure is returned so the supervisor can restart the server.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("Starting webhook server", "address", httpServer.Addr, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("webhook server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	s.log.Info("Shutting down webhook server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("Webhook server did not drain in time", "error", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.Snapshot())
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
