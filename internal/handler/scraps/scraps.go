// File: internal/handler/scraps/scraps.go
package scraps

import (
	"errors"
	"net/http"

	"jieum/internal/api"
	"jieum/internal/database"
	"jieum/internal/handler"
	"jieum/internal/model"
	"jieum/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgLoadError      = "데이터베이스에서 스크랩 데이터를 가져오는데 실패했습니다."
	msgCreateOK       = "성공적으로 스크랩이 저장되었습니다."
	msgIdeaNotFound   = "스크랩 실패: 아이디어를 찾을 수 없습니다."
	msgCreateErr      = "스크랩 저장 중 서버 에러가 발생했습니다."
	msgDeleteOK       = "성공적으로 스크랩이 삭제되었습니다."
	msgDeleteNotFound = "삭제 실패: 스크랩을 찾을 수 없습니다."
	msgDeleteErr      = "스크랩 삭제 중 서버 에러가 발생했습니다."
)

var (
	listScrapsByUser = store.ListScrapsByUser
	createScrap      = store.CreateScrap
	getScrapOwner    = store.GetScrapOwner
	deleteScrap      = store.DeleteScrap
)

// ListHandler 目前使用者的 scrap 與對應 idea
func ListHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		scraps, err := listScrapsByUser(c.Request().Context(), db, claims.UserID)
		if err != nil {
			l.Error("failed to list scraps", zap.Int("user_id", claims.UserID), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoadError)
		}
		return c.JSON(http.StatusOK, scraps)
	}
}

func CreateHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		var req api.ScrapRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		scrap := &model.Scrap{UserID: claims.UserID, IdeaID: req.IdeaID}
		switch err := createScrap(c.Request().Context(), db, scrap); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgIdeaNotFound)
		case err != nil:
			l.Error("failed to create scrap", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgCreateErr)
		}
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: scrap.ID, Message: msgCreateOK})
	}
}

// DeleteHandler scrap 擁有者或管理員才可刪除
func DeleteHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		ownerID, err := getScrapOwner(ctx, db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		}
		if err != nil {
			l.Error("failed to load scrap owner", zap.Int("scrap_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		if !handler.CanModify(claims, ownerID) {
			return handler.Fail(c, http.StatusForbidden, handler.MsgForbidden)
		}

		switch err := deleteScrap(ctx, db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		case err != nil:
			l.Error("failed to delete scrap", zap.Int("scrap_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
