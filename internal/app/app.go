package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quicknotes/notes-api/handlers"
	"github.com/quicknotes/notes-api/internal/config"
	"github.com/quicknotes/notes-api/internal/note/gateway"
	"github.com/quicknotes/notes-api/internal/note/handler"
	"github.com/quicknotes/notes-api/internal/note/service"
	"github.com/quicknotes/notes-api/pkg/logger"
	"github.com/quicknotes/notes-api/pkg/metrics"
	"github.com/quicknotes/notes-api/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

// App owns the long-lived clients and the HTTP engine built from them.
type App struct {
	Engine  *gin.Engine
	Gateway *gateway.Gateway

	redis   *redis.Client
	closers []func(context.Context) error
}

// New connects the configured backends and assembles the engine. Any backend
// that cannot be built is a startup error.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{}
	var err error
	if a.redis, err = a.connectRedis(ctx, cfg); err != nil {
		a.Close(ctx)
		return nil, err
	}
	records, err := a.buildRecordStore(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("record store: %w", err)
	}
	blobs, err := buildBlobStore(cfg)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("blob store: %w", err)
	}
	a.Gateway = gateway.New(blobs, records)
	if reg != nil {
		metrics.RegisterCollectors(reg)
	}
	a.Engine = NewEngine(cfg, service.New(a.Gateway), a.Gateway.Ready, a.redis)
	logger.Infof("stores: record=%s blob=%s", records.Name(), blobs.Name())
	return a, nil
}

// NewEngine builds the gin engine: global middleware, note routes under the
// configured prefix (rate limited when enabled), health, metrics and OpenAPI
// docs. limiterRedis may be nil.
func NewEngine(cfg *config.Config, svc service.Service, ready handlers.ReadyFunc, limiterRedis *redis.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if cfg.Server.MaxUploadMB > 0 {
		r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	}
	r.Use(middleware.CORS(), middleware.RequestLogger(), gin.Recovery())

	api := r.Group(cfg.Server.APIPrefix)
	if lim := rateLimiter(cfg, limiterRedis); lim != nil {
		api.Use(lim)
	}
	handler.RegisterNoteRoutes(api, svc, middleware.APIKeyMiddleware(cfg.APIKey))
	handlers.RegisterHealth(r, ready)
	handlers.RegisterSwagger(r, cfg.Server.APIPrefix)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}

// rateLimiter throttles the note API only; probes and scrapes are never
// limited. It returns nil when rate limiting is disabled.
func rateLimiter(cfg *config.Config, limiterRedis *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.UseRedis && limiterRedis != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
	}
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// Close releases every client opened by New.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warnf("close: %v", err)
		}
	}
	a.closers = nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      a.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Infof("notes API listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Infof("shutting down")
	return srv.Shutdown(shutdownCtx)
}
