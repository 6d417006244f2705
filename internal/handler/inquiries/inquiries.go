// File: internal/handler/inquiries/inquiries.go
package inquiries

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
	msgLoadError      = "데이터베이스에서 문의사항 데이터를 가져오는데 실패했습니다."
	msgCreateOK       = "성공적으로 문의사항이 등록되었습니다."
	msgCreateErr      = "문의사항 등록 중 서버 에러가 발생했습니다."
	msgUpdateOK       = "성공적으로 문의사항 상태가 수정되었습니다."
	msgUpdateNotFound = "수정 실패: 문의사항을 찾을 수 없습니다."
	msgUpdateErr      = "문의사항 상태 수정 중 서버 에러가 발생했습니다."
	msgDeleteOK       = "성공적으로 문의사항이 삭제되었습니다."
	msgDeleteNotFound = "삭제 실패: 문의사항을 찾을 수 없습니다."
	msgDeleteErr      = "문의사항 삭제 중 서버 에러가 발생했습니다."
)

var (
	listInquiries       = store.ListInquiries
	createInquiry       = store.CreateInquiry
	updateInquiryStatus = store.UpdateInquiryStatus
	deleteInquiry       = store.DeleteInquiry
)

// ListHandler 管理員取得所有問題回報與提出者
func ListHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		inquiries, err := listInquiries(c.Request().Context(), db)
		if err != nil {
			l.Error("failed to list inquiries", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoadError)
		}
		return c.JSON(http.StatusOK, inquiries)
	}
}

// CreateHandler 以目前使用者建立一筆 pending 狀態的問題回報
func CreateHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		inquiry := &model.Inquiry{UserID: claims.UserID}
		if err := createInquiry(c.Request().Context(), db, inquiry); err != nil {
			l.Error("failed to create inquiry", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgCreateErr)
		}
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: inquiry.ID, Message: msgCreateOK})
	}
}

func UpdateStatusHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		var req api.InquiryStatusRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		switch err := updateInquiryStatus(c.Request().Context(), db, id, model.InquiryStatus(req.Status)); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
		case err != nil:
			l.Error("failed to update inquiry", zap.Int("inquiry_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgUpdateOK})
	}
}

func DeleteHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}

		switch err := deleteInquiry(c.Request().Context(), db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		case err != nil:
			l.Error("failed to delete inquiry", zap.Int("inquiry_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteErr)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
