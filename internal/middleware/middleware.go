package middleware

import (
	"errors"
	"net/http"

	"jieum/internal/model"
	"jieum/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const ContextUserKey = "user"

const (
	MsgTokenMissing     = "인증 실패 -  토큰이 없습니다."
	MsgTokenMalformed   = "인증 실패 - 잘못된 토큰 형식입니다."
	MsgTokenExpired     = "인증 실패 - 토큰이 만료되었습니다."
	MsgTokenInvalid     = "인증 실패 - 유효하지 않은 토큰입니다."
	MsgTokenNotYetValid = "인증 실패 - 아직 유효하지 않은 토큰입니다."
	MsgAuthServerError  = "인증 처리 중 서버 에러가 발생했습니다."
	MsgLoginRequired    = "인증 필요 - 로그인 후 접근하세요."
	MsgForbidden        = "접근 거부 - 권한이 없습니다."
)

// TokenVerifier 由 service.TokenIssuer 實作
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

var tokenMessages = []struct {
	err error
	msg string
}{
	{service.ErrTokenMissing, MsgTokenMissing},
	{service.ErrTokenMalformed, MsgTokenMalformed},
	{service.ErrTokenExpired, MsgTokenExpired},
	{service.ErrTokenInvalid, MsgTokenInvalid},
	{service.ErrTokenNotYetValid, MsgTokenNotYetValid},
}

// Authenticate 驗證 Bearer token，成功後把 claims 放進 context
func Authenticate(v TokenVerifier, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := service.ParseBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err == nil {
				var claims *service.Claims
				claims, err = v.Verify(token)
				if err == nil {
					c.Set(ContextUserKey, claims)
					return next(c)
				}
			}
			for _, tm := range tokenMessages {
				if errors.Is(err, tm.err) {
					return echo.NewHTTPError(http.StatusUnauthorized, tm.msg)
				}
			}
			l.Error("failed to verify token", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, MsgAuthServerError)
		}
	}
}

// Restrict 只允許指定角色通過，必須掛在 Authenticate 之後
func Restrict(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, MsgLoginRequired)
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, MsgForbidden)
		}
	}
}

func ClaimsFrom(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.Claims)
	return claims, ok && claims != nil
}
