// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jieum/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL 所有 access token 固定一小時有效
const TokenTTL = time.Hour

var (
	ErrTokenMissing     = errors.New("token missing")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenNotYetValid = errors.New("token not yet valid")
)

var parseWithClaims = jwt.ParseWithClaims

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID   int        `json:"id"`
	Role     model.Role `json:"role"`
	Nickname string     `json:"nickname"`
	jwt.RegisteredClaims
}

// TokenIssuer 以 HS256 簽發並驗證 access token
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	return &TokenIssuer{secret: []byte(secret), now: time.Now}, nil
}

// Issue 依據使用者資訊產生 JWT
func (i *TokenIssuer) Issue(user model.User) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify 驗證並解析 JWT，失敗時回傳對應的 ErrTokenXxx
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ErrTokenInvalid
	}
	return fmt.Errorf("VerifyToken: %w", err)
}

// ParseBearer 從 Authorization header 取出 token
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrTokenMissing
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrTokenMalformed
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrTokenMalformed
	}
	return token, nil
}
