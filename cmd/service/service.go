package main

import (
	"context"
	"fmt"

	"jieum/internal/api"
	"jieum/internal/cache"
	"jieum/internal/config"
	"jieum/internal/database"
	"jieum/internal/logger"
	"jieum/internal/router"
	"jieum/internal/service"
	"jieum/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := newLogger(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	issuer, err := service.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("JWT 設定錯誤: %w", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			l.Warn("failed to close redis", zap.Error(err))
		}
	}()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, l)
	defer wp.Stop()

	e := newEcho(cfg, l)
	router.Setup(e, db, rdb, issuer, wp, l)

	l.Info("server starting", zap.String("addr", cfg.ListenAddr), zap.Int("workers", cfg.WorkerCount))
	return startServer(e, cfg.ListenAddr)
}

// newEcho 建立 echo 實例並掛上共用中介層
func newEcho(cfg *config.Config, l *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Validator = api.NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				l.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			l.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	return e
}
