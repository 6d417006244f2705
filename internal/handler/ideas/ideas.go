// File: internal/handler/ideas/ideas.go
package ideas

import (
	"errors"
	"net/http"

	"jieum/internal/api"
	"jieum/internal/database"
	"jieum/internal/handler"
	"jieum/internal/model"
	"jieum/internal/service"
	"jieum/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgLoadError      = "데이터베이스에서 아이디어 데이터를 가져오는데 실패했습니다."
	msgNotFound       = "결과 데이터가 없습니다."
	msgCategoryAbsent = "존재하지 않는 카테고리입니다."
	msgCreateOK       = "성공적으로 아이디어가 등록되었습니다."
	msgCreateErr      = "아이디어 등록 중 서버 에러가 발생했습니다."
	msgUpdateOK       = "성공적으로 아이디어가 수정되었습니다."
	msgUpdateNotFound = "수정 실패: 아이디어를 찾을 수 없습니다."
	msgUpdateErr      = "아이디어 수정 중 서버 에러가 발생했습니다."
	msgDeleteOK       = "성공적으로 아이디어가 삭제되었습니다."
	msgDeleteNotFound = "삭제 실패: 아이디어를 찾을 수 없습니다."
	msgDeleteErr      = "아이디어 삭제 중 서버 에러가 발생했습니다."
)

var (
	listIdeaDetails = store.ListIdeaDetails
	getIdeaDetails  = store.GetIdeaDetails
	getIdeaWriter   = store.GetIdeaWriter
	createIdea      = store.CreateIdea
	updateIdea      = store.UpdateIdea
	deleteIdea      = store.DeleteIdea
	adjustCounter   = store.AdjustCounter
)

// ListHandler 公開的 idea 列表，可依分類名稱、關鍵字過濾並排序
func ListHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var q api.IdeaListQuery
		if ok, err := handler.BindValid(c, &q); !ok {
			return err
		}
		// 儲存時已跳脫，查詢條件也要跳脫才比對得到
		filter := store.IdeaFilter{
			Category: service.Escape(q.Category),
			Search:   service.Escape(q.Search),
			Sort:     q.Sort,
		}
		return writeList(c, db, l, filter)
	}
}

// ListMineHandler 目前使用者自己的 idea
func ListMineHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		var q api.IdeaListQuery
		if ok, err := handler.BindValid(c, &q); !ok {
			return err
		}
		return writeList(c, db, l, store.IdeaFilter{WriterID: claims.UserID, Sort: q.Sort})
	}
}

func writeList(c echo.Context, db database.DB, l *zap.Logger, f store.IdeaFilter) error {
	details, err := listIdeaDetails(c.Request().Context(), db, f)
	if err != nil {
		l.Error("failed to list ideas", zap.Error(err))
		return handler.Fail(c, http.StatusInternalServerError, msgLoadError)
	}
	return c.JSON(http.StatusOK, details)
}

func GetHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		details, err := getIdeaDetails(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			l.Error("failed to get idea", zap.Int("idea_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoadError)
		}
		return c.JSON(http.StatusOK, details)
	}
}

func ideaFrom(req api.IdeaRequest) model.Idea {
	return model.Idea{
		CategoryID: req.Idea.CategoryID,
		Title:      service.Escape(req.Idea.Title),
		Content:    service.Escape(req.Idea.Content),
	}
}

// CreateHandler idea 與標籤在同一個 transaction 內建立
func CreateHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		var req api.IdeaRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		idea := ideaFrom(req)
		idea.WriterID = claims.UserID
		tags := service.NormalizeTags(req.TagNames())

		switch err := createIdea(c.Request().Context(), db, &idea, tags); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgCategoryAbsent)
		case err != nil:
			l.Error("failed to create idea", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgCreateErr)
		}
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: idea.ID, Message: msgCreateOK})
	}
}

// UpdateHandler 作者或管理員修改 idea；body 帶 tags 時整批取代
func UpdateHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		var req api.IdeaRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}
		ctx := c.Request().Context()

		writerID, err := getIdeaWriter(ctx, db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
		}
		if err != nil {
			l.Error("failed to load idea writer", zap.Int("idea_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateErr)
		}
		if !handler.CanModify(claims, writerID) {
			return handler.Fail(c, http.StatusForbidden, handler.MsgForbidden)
		}

		idea := ideaFrom(req)
		idea.ID = id
		tags := service.NormalizeTags(req.TagNames())

		switch err := updateIdea(ctx, db, &idea, tags, req.Tags != nil); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
		case err != nil:
			l.Error("failed to update idea", zap.Int("idea_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgUpdateOK})
	}
}

// DeleteHandler 作者或管理員軟刪除 idea
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

		writerID, err := getIdeaWriter(ctx, db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		}
		if err != nil {
			l.Error("failed to load idea writer", zap.Int("idea_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		if !handler.CanModify(claims, writerID) {
			return handler.Fail(c, http.StatusForbidden, handler.MsgForbidden)
		}

		switch err := deleteIdea(ctx, db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		case err != nil:
			l.Error("failed to delete idea", zap.Int("idea_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
