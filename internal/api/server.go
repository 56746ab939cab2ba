package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-clob/internal/auth"
	"github.com/abdoElHodaky/tradsys-clob/internal/config"
	"github.com/abdoElHodaky/tradsys-clob/internal/matching/engine"
)

// Server wraps the gin engine and the http.Server serving it, mirroring
// the bootstrap cmd/tradsys/main.go's runServer performs for its own HTTP
// surface.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds the gin router, wires every middleware and route, and
// prepares (without starting) the underlying http.Server.
func New(cfg *config.Config, eng *engine.Engine, registry *prometheus.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "Idempotency-Key")
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	if cfg.Monitoring.Enabled {
		path := cfg.Monitoring.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	authService := auth.NewService(auth.Config{
		SigningKey: cfg.Auth.JWTSigningKey,
		Issuer:     "clobd",
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	authMiddleware := auth.NewMiddleware(authService, cfg.Server.RateLimitPerMin, logger)

	v1 := router.Group("/v1")
	v1.Use(authMiddleware.RateLimit())
	if cfg.Auth.Enabled {
		v1.Use(authMiddleware.RequireBearerToken())
	}
	v1.Use(Idempotency(time.Minute))

	orderHandler := NewOrderHandler(eng, logger)
	orderHandler.RegisterRoutes(v1)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:         addr(cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run starts serving and blocks until ctx is cancelled, then drains
// in-flight requests within cfg.Server.ShutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

func addr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return ":" + strconv.Itoa(port)
}
