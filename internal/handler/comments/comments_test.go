package comments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jieum/internal/api"
	"jieum/internal/database"
	"jieum/internal/middleware"
	"jieum/internal/model"
	"jieum/internal/service"
	"jieum/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restore() {
	createComment = store.CreateComment
	getCommentWriter = store.GetCommentWriter
	deleteComment = store.DeleteComment
}

var (
	l      = zap.NewNop()
	member = &service.Claims{UserID: 1, Role: model.RoleMember}
	other  = &service.Claims{UserID: 2, Role: model.RoleMember}
	admin  = &service.Claims{UserID: 9, Role: model.RoleAdmin}
)

func newCtx(method, target, id, body string, claims *service.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func TestCreateHandler(t *testing.T) {
	t.Cleanup(restore)
	var saved model.Comment
	createComment = func(_ context.Context, _ database.Querier, c *model.Comment) error {
		if c.IdeaID != 3 {
			return fmt.Errorf("CreateComment: %w", store.ErrNotFound)
		}
		c.ID = 11
		saved = *c
		return nil
	}

	ctx, rec := newCtx(http.MethodPost, "/api/comments", "", `{"ideaId":3,"content":"<b>hi</b>"}`, member)
	require.NoError(t, CreateHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":11`)
	require.Contains(t, rec.Body.String(), msgCreateOK)
	require.Equal(t, 1, saved.WriterID)
	require.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", saved.Content)

	ctx, rec = newCtx(http.MethodPost, "/api/comments", "", `{"ideaId":4,"content":"hi"}`, member)
	require.NoError(t, CreateHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	ctx, rec = newCtx(http.MethodPost, "/api/comments", "", `{"ideaId":3,"content":"   "}`, member)
	require.NoError(t, CreateHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	createComment = func(context.Context, database.Querier, *model.Comment) error { return errors.New("db") }
	ctx, rec = newCtx(http.MethodPost, "/api/comments", "", `{"ideaId":3,"content":"hi"}`, member)
	require.NoError(t, CreateHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "db")
}

func TestCreateHandlerRequiresCaller(t *testing.T) {
	ctx, _ := newCtx(http.MethodPost, "/api/comments", "", `{"ideaId":3,"content":"hi"}`, nil)
	err := CreateHandler(&database.FakeDB{}, l)(ctx)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestDeleteHandler(t *testing.T) {
	t.Cleanup(restore)
	deleted := map[int]bool{}
	getCommentWriter = func(_ context.Context, _ database.Querier, id int) (int, error) {
		if id != 7 || deleted[id] {
			return 0, fmt.Errorf("GetCommentWriter: %w", store.ErrNotFound)
		}
		return 1, nil
	}
	deleteComment = func(_ context.Context, _ database.Querier, id int) error {
		deleted[id] = true
		return nil
	}

	tests := []struct {
		name   string
		id     string
		claims *service.Claims
		want   int
	}{
		{"bad id", "x", member, http.StatusBadRequest},
		{"missing", "8", member, http.StatusNotFound},
		{"other member", "7", other, http.StatusForbidden},
		{"owner", "7", member, http.StatusOK},
		{"already deleted", "7", admin, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newCtx(http.MethodDelete, "/api/comments/"+tt.id, tt.id, "", tt.claims)
			require.NoError(t, DeleteHandler(&database.FakeDB{}, l)(ctx))
			require.Equal(t, tt.want, rec.Code)
		})
	}
	require.True(t, deleted[7])
}

func TestDeleteHandlerAdminAndFailure(t *testing.T) {
	t.Cleanup(restore)
	getCommentWriter = func(context.Context, database.Querier, int) (int, error) { return 1, nil }
	deleteComment = func(context.Context, database.Querier, int) error { return nil }

	ctx, rec := newCtx(http.MethodDelete, "/api/comments/7", "7", "", admin)
	require.NoError(t, DeleteHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), msgDeleteOK)

	deleteComment = func(context.Context, database.Querier, int) error { return errors.New("db") }
	ctx, rec = newCtx(http.MethodDelete, "/api/comments/7", "7", "", admin)
	require.NoError(t, DeleteHandler(&database.FakeDB{}, l)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
