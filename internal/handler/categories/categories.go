// File: internal/handler/categories/categories.go
package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"jieum/internal/api"
	"jieum/internal/cache"
	"jieum/internal/database"
	"jieum/internal/handler"
	"jieum/internal/model"
	"jieum/internal/service"
	"jieum/internal/store"
	"jieum/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CacheKey     = "categories:all"
	CacheTTL     = 10 * time.Minute
	warmTimeout  = 5 * time.Second
	msgLoadError = "데이터베이스에서 카테고리 데이터를 가져오는데 실패했습니다."
	msgCreateOK  = "성공적으로 카테고리가 등록되었습니다."
	msgCreateErr = "카테고리 등록 중 서버 에러가 발생했습니다."
	msgDeleteOK  = "성공적으로 카테고리가 삭제되었습니다."
	msgNotFound  = "삭제 실패: 카테고리를 찾을 수 없습니다."
	msgDeleteErr = "카테고리 삭제 중 서버 에러가 발생했습니다."
)

var (
	listCategories = store.ListCategories
	createCategory = store.CreateCategory
	deleteCategory = store.DeleteCategory
	jsonMarshal    = json.Marshal
)

// ListHandler 先讀 Redis，miss 時查資料庫並回填
func ListHandler(db database.DB, cch cache.Cache, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		cached, err := cch.Get(ctx, CacheKey).Bytes()
		if err == nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
		if !errors.Is(err, redis.Nil) {
			l.Warn("failed to read category cache", zap.Error(err))
		}

		body, err := load(ctx, db, cch, l)
		if err != nil {
			l.Error("failed to list categories", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoadError)
		}
		return c.JSONBlob(http.StatusOK, body)
	}
}

// load 查詢分類並寫入快取；快取寫入失敗只記錄不影響回應
func load(ctx context.Context, db database.DB, cch cache.Cache, l *zap.Logger) ([]byte, error) {
	categories, err := listCategories(ctx, db)
	if err != nil {
		return nil, err
	}
	body, err := jsonMarshal(categories)
	if err != nil {
		return nil, err
	}
	if err := cch.Set(ctx, CacheKey, body, CacheTTL).Err(); err != nil {
		l.Warn("failed to write category cache", zap.Error(err))
	}
	return body, nil
}

// invalidate 刪除快取並交給 worker pool 重新預熱
func invalidate(ctx context.Context, db database.DB, cch cache.Cache, pool worker.Pool, l *zap.Logger) {
	if err := cch.Del(ctx, CacheKey).Err(); err != nil {
		l.Warn("failed to invalidate category cache", zap.Error(err))
	}
	pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		if _, err := load(ctx, db, cch, l); err != nil {
			l.Warn("failed to warm category cache", zap.Error(err))
		}
	})
}

// CreateHandler 管理員新增分類
func CreateHandler(db database.DB, cch cache.Cache, pool worker.Pool, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CategoryRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}
		ctx := c.Request().Context()

		category := &model.Category{Name: service.Escape(req.Name)}
		if err := createCategory(ctx, db, category); err != nil {
			l.Error("failed to create category", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgCreateErr)
		}
		invalidate(ctx, db, cch, pool, l)
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: category.ID, Message: msgCreateOK})
	}
}

// DeleteHandler 管理員軟刪除分類
func DeleteHandler(db database.DB, cch cache.Cache, pool worker.Pool, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		ctx := c.Request().Context()

		switch err := deleteCategory(ctx, db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgNotFound)
		case err != nil:
			l.Error("failed to delete category", zap.Int("category_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		invalidate(ctx, db, cch, pool, l)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
