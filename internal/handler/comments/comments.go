// File: internal/handler/comments/comments.go
package comments

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
	msgCreateOK       = "성공적으로 댓글이 등록되었습니다."
	msgIdeaNotFound   = "댓글 등록 실패: 아이디어를 찾을 수 없습니다."
	msgCreateErr      = "댓글 등록 중 서버 에러가 발생했습니다."
	msgDeleteOK       = "성공적으로 댓글이 삭제되었습니다."
	msgDeleteNotFound = "삭제 실패: 댓글을 찾을 수 없습니다."
	msgDeleteErr      = "댓글 삭제 중 서버 에러가 발생했습니다."
)

var (
	createComment    = store.CreateComment
	getCommentWriter = store.GetCommentWriter
	deleteComment    = store.DeleteComment
)

func CreateHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		var req api.CommentRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		comment := &model.Comment{
			WriterID: claims.UserID,
			IdeaID:   req.IdeaID,
			Content:  service.Escape(req.Content),
		}
		switch err := createComment(c.Request().Context(), db, comment); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgIdeaNotFound)
		case err != nil:
			l.Error("failed to create comment", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgCreateErr)
		}
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: comment.ID, Message: msgCreateOK})
	}
}

// DeleteHandler 留言作者或管理員才可刪除
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

		writerID, err := getCommentWriter(ctx, db, id)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		}
		if err != nil {
			l.Error("failed to load comment writer", zap.Int("comment_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		if !handler.CanModify(claims, writerID) {
			return handler.Fail(c, http.StatusForbidden, handler.MsgForbidden)
		}

		switch err := deleteComment(ctx, db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		case err != nil:
			l.Error("failed to delete comment", zap.Int("comment_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
