// File: internal/handler/handler.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"jieum/internal/api"
	"jieum/internal/middleware"
	"jieum/internal/model"
	"jieum/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	MsgInvalidID      = "올바른 ID를 입력하세요."
	MsgInvalidRequest = "잘못된 요청 형식입니다."
	MsgForbidden      = "접근 거부: 권한이 없습니다."
)

var errInvalidID = errors.New("invalid id")

// ParseID 讀取路徑參數 :id，必須是正整數
func ParseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// Fail 回傳 {message} 錯誤響應
func Fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, api.ErrorResponse{Message: msg})
}

// BindValid 先 Bind 再 Validate；失敗時已寫出 400，回傳 false
func BindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, Fail(c, http.StatusBadRequest, MsgInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return false, Fail(c, http.StatusBadRequest, api.ValidationMessage(err))
	}
	return true, nil
}

// Caller 取得已驗證的使用者；沒有 claims 時回傳 401
func Caller(c echo.Context) (*service.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, middleware.MsgLoginRequired)
	}
	return claims, nil
}

// CanModify 資源擁有者或管理員才可修改
func CanModify(claims *service.Claims, ownerID int) bool {
	return claims.Role == model.RoleAdmin || claims.UserID == ownerID
}
