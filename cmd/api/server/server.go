package server

import (
	"net/http"
	"time"

	ginhandler "user-account-service/internal/adapter/gin/handler"
	ginrouter "user-account-service/internal/adapter/gin/router"
	"user-account-service/internal/config"
	pkgredis "user-account-service/pkg/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router fully wired.
func New(cfg *config.Config, l *zap.Logger, handler *ginhandler.UserHandler, redisClient *pkgredis.Client) *Server {
	var rdb *redis.Client
	if redisClient != nil {
		rdb = redisClient.Client
	}

	router := ginrouter.SetupRouter(handler, rdb, cfg.RateLimit, l)

	addr := ":" + cfg.App.HTTPPort
	l.Info("HTTP API configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
