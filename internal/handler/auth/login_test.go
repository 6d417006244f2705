package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jieum/internal/api"
	"jieum/internal/database"
	"jieum/internal/model"
	"jieum/internal/service"
	"jieum/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restore() {
	getUserByLoginID = store.GetUserByLoginID
	authenticateUser = service.AuthenticateUser
}

func newLoginCtx(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type issuerFunc func(model.User) (string, error)

func (f issuerFunc) Issue(u model.User) (string, error) { return f(u) }

const validBody = `{"loginId":"miso","password":"adminmiso"}`

func TestLoginHandler(t *testing.T) {
	issuer, err := service.NewTokenIssuer("s")
	require.NoError(t, err)
	hash, err := service.HashPassword("adminmiso")
	require.NoError(t, err)
	l := zap.NewNop()

	t.Run("invalid body", func(t *testing.T) {
		t.Cleanup(restore)
		for _, body := range []string{`{`, `{"loginId":"mi so","password":"adminmiso"}`, `{"loginId":"miso","password":"short"}`} {
			ctx, rec := newLoginCtx(body)
			require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, fmt.Errorf("GetUserByLoginID: %w", store.ErrNotFound)
		}
		ctx, rec := newLoginCtx(validBody)
		require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), msgLoginFailed)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(context.Context, database.Querier, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newLoginCtx(validBody)
		require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "db down")
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(context.Context, database.Querier, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash}, nil
		}
		ctx, rec := newLoginCtx(`{"loginId":"miso","password":"wrongpass"}`)
		require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), msgLoginFailed)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(context.Context, database.Querier, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash, Deleted: true}, nil
		}
		ctx, rec := newLoginCtx(validBody)
		require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("issue error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(context.Context, database.Querier, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: hash}, nil
		}
		broken := issuerFunc(func(model.User) (string, error) { return "", errors.New("sign") })
		ctx, rec := newLoginCtx(validBody)
		require.NoError(t, LoginHandler(&database.FakeDB{}, broken, l)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success token carries user id", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByLoginID = func(_ context.Context, _ database.Querier, loginID string) (*model.User, error) {
			require.Equal(t, "miso", loginID)
			return &model.User{ID: 1, Role: model.RoleAdmin, Nickname: "미소", PasswordHash: hash}, nil
		}
		ctx, rec := newLoginCtx(validBody)
		require.NoError(t, LoginHandler(&database.FakeDB{}, issuer, l)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		claims, err := issuer.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, 1, claims.UserID)
		require.Equal(t, model.RoleAdmin, claims.Role)
	})
}
