package router

import (
	"github.com/gin-gonic/gin"
	_ "github.com/supplements/backend/docs"
	"github.com/supplements/backend/internal/infrastructure/logger"
	"github.com/supplements/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig holds the global middleware settings
type EngineConfig struct {
	Logger         *zap.Logger
	Tracing        middleware.TracingConfig
	CORS           middleware.CORSConfig
	Metrics        *middleware.HTTPMetrics
	TrustedProxies []string
	// Swagger mounts the API docs UI at /swagger/index.html
	Swagger bool
}

// NewEngine creates a gin engine with the global middleware chain. /metrics
// is mounted when Metrics is set and /swagger when Swagger is.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return engine, nil
}
