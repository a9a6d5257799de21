package main

import (
	"context"

	"dayflow/internal/app"
	"dayflow/internal/bootstrap"
	"dayflow/internal/config"
	"dayflow/internal/middleware"
	"dayflow/internal/shared/apperror"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	a, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("app build failed", zap.Error(err))
	}
	defer a.Close()

	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	a.StartPublisher(publisherCtx)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: true,
	}))
	engine.Use(middleware.RateLimitByIP(50, 100))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	a.RegisterRoutes(engine)

	if err := bootstrap.Serve(cfg, engine, logger, func() {
		stopPublisher()
	}); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}
