// File: internal/handler/auth/login.go
package auth

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
	msgLoginFailed = "아이디 또는 비밀번호가 잘못되었습니다."
	msgLoginError  = "로그인 처리 중 서버 에러가 발생했습니다."
)

// TokenIssuer 由 service.TokenIssuer 實作
type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

var (
	getUserByLoginID = store.GetUserByLoginID
	authenticateUser = service.AuthenticateUser
)

// LoginHandler 使用 loginId/password 驗證並回傳 JWT
func LoginHandler(db database.DB, issuer TokenIssuer, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		// 帳號不存在與密碼錯誤回傳同一個訊息
		user, err := getUserByLoginID(c.Request().Context(), db, req.LoginID)
		if errors.Is(err, store.ErrNotFound) {
			return handler.Fail(c, http.StatusBadRequest, msgLoginFailed)
		}
		if err != nil {
			l.Error("failed to load user", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoginError)
		}

		if err := authenticateUser(*user, req.Password); err != nil {
			return handler.Fail(c, http.StatusBadRequest, msgLoginFailed)
		}

		token, err := issuer.Issue(*user)
		if err != nil {
			l.Error("failed to issue token", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoginError)
		}
		return c.JSON(http.StatusOK, api.LoginResponse{Token: token})
	}
}
