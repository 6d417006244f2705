// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"jieum/internal/api"
	"jieum/internal/cache"
	"jieum/internal/database"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PingResponse 健康檢查回應模型
type PingResponse struct {
	Message string `json:"message"`
}

// PingHandler 健康檢查（需通過認證），同時檢查資料庫與快取
func PingHandler(db database.DB, cch cache.Cache, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			l.Error("failed to ping database", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, "ping", "pong", time.Second).Err(); err != nil {
			l.Error("failed to ping cache", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
