// File: internal/handler/users/users.go
package users

import (
	"context"
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
	msgLoadFailed     = "데이터베이스에서 사용자 데이터를 가져오는데 실패했습니다."
	msgNotFound       = "결과 데이터가 없습니다."
	msgSignupOK       = "성공적으로 회원가입 되었습니다."
	msgSignupFailed   = "회원가입 중 서버 에러가 발생했습니다."
	msgNicknameTaken  = "이미 존재하는 닉네임입니다."
	msgLoginIDTaken   = "이미 존재하는 아이디입니다."
	msgDuplicate      = "이미 존재하는 닉네임 또는 아이디입니다."
	msgUpdateOK       = "성공적으로 사용자 정보가 수정되었습니다."
	msgUpdateNotFound = "수정 실패: 사용자를 찾을 수 없습니다."
	msgUpdateFailed   = "사용자 정보 수정 중 서버 에러가 발생했습니다."
	msgDeleteOK       = "성공적으로 사용자가 삭제되었습니다."
	msgDeleteNotFound = "삭제 실패: 사용자를 찾을 수 없습니다."
	msgDeleteFailed   = "사용자 삭제 중 서버 에러가 발생했습니다."
)

var (
	hashPassword   = service.HashPassword
	listUsers      = store.ListUsers
	getUserByID    = store.GetUserByID
	nicknameTaken  = store.NicknameTaken
	loginIDTaken   = store.LoginIDTaken
	createUser     = store.CreateUser
	updateUser     = store.UpdateUser
	updateUserRole = store.UpdateUserRole
	deleteUser     = store.DeleteUser
)

// ListUsersHandler 管理員取得所有未刪除的使用者
func ListUsersHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			l.Error("failed to list users", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgLoadFailed)
		}
		return c.JSON(http.StatusOK, users)
	}
}

func GetMeHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		return writeUser(c, db, l, claims.UserID)
	}
}

func GetUserHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		return writeUser(c, db, l, id)
	}
}

func writeUser(c echo.Context, db database.DB, l *zap.Logger, id int) error {
	user, err := getUserByID(c.Request().Context(), db, id)
	if errors.Is(err, store.ErrNotFound) {
		return handler.Fail(c, http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		l.Error("failed to get user", zap.Int("user_id", id), zap.Error(err))
		return handler.Fail(c, http.StatusInternalServerError, msgLoadFailed)
	}
	return c.JSON(http.StatusOK, user)
}

// checkDuplicates 回傳衝突訊息，沒有衝突時回傳空字串
func checkDuplicates(ctx context.Context, db database.DB, nickname, loginID string, excludeID int) (string, error) {
	taken, err := nicknameTaken(ctx, db, nickname, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return msgNicknameTaken, nil
	}
	taken, err = loginIDTaken(ctx, db, loginID, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		return msgLoginIDTaken, nil
	}
	return "", nil
}

// CreateUserHandler 公開註冊，角色固定為 member
func CreateUserHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}
		ctx := c.Request().Context()
		nickname := service.Escape(req.Nickname)

		msg, err := checkDuplicates(ctx, db, nickname, req.LoginID, 0)
		if err != nil {
			l.Error("failed to check duplicates", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgSignupFailed)
		}
		if msg != "" {
			return handler.Fail(c, http.StatusConflict, msg)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			l.Error("failed to hash password", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgSignupFailed)
		}

		user := &model.User{
			Role:         model.RoleMember,
			Nickname:     nickname,
			LoginID:      req.LoginID,
			PasswordHash: hash,
		}
		if err := createUser(ctx, db, user); err != nil {
			// 並發註冊時由 unique 約束擋下
			if errors.Is(err, store.ErrConflict) {
				return handler.Fail(c, http.StatusConflict, msgDuplicate)
			}
			l.Error("failed to create user", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgSignupFailed)
		}
		return c.JSON(http.StatusOK, api.CreatedResponse{ID: user.ID, Message: msgSignupOK})
	}
}

// UpdateUserHandler 本人或管理員修改個人資料，角色不變
func UpdateUserHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		claims, err := handler.Caller(c)
		if err != nil {
			return err
		}
		if !handler.CanModify(claims, id) {
			return handler.Fail(c, http.StatusForbidden, handler.MsgForbidden)
		}

		var req api.CreateUserRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}
		ctx := c.Request().Context()
		nickname := service.Escape(req.Nickname)

		msg, err := checkDuplicates(ctx, db, nickname, req.LoginID, id)
		if err != nil {
			l.Error("failed to check duplicates", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateFailed)
		}
		if msg != "" {
			return handler.Fail(c, http.StatusConflict, msg)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			l.Error("failed to hash password", zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateFailed)
		}

		user := &model.User{ID: id, Nickname: nickname, LoginID: req.LoginID, PasswordHash: hash}
		switch err := updateUser(ctx, db, user); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
		case errors.Is(err, store.ErrConflict):
			return handler.Fail(c, http.StatusConflict, msgDuplicate)
		case err != nil:
			l.Error("failed to update user", zap.Int("user_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateFailed)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgUpdateOK})
	}
}

// UpdateRoleHandler 管理員變更使用者角色
func UpdateRoleHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}
		var req api.UpdateRoleRequest
		if ok, err := handler.BindValid(c, &req); !ok {
			return err
		}

		switch err := updateUserRole(c.Request().Context(), db, id, model.Role(req.Role)); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgUpdateNotFound)
		case err != nil:
			l.Error("failed to update role", zap.Int("user_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgUpdateFailed)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgUpdateOK})
	}
}

// DeleteUserHandler 管理員軟刪除使用者
func DeleteUserHandler(db database.DB, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParseID(c)
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, handler.MsgInvalidID)
		}

		switch err := deleteUser(c.Request().Context(), db, id); {
		case errors.Is(err, store.ErrNotFound):
			return handler.Fail(c, http.StatusNotFound, msgDeleteNotFound)
		case err != nil:
			l.Error("failed to delete user", zap.Int("user_id", id), zap.Error(err))
			return handler.Fail(c, http.StatusInternalServerError, msgDeleteFailed)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleteOK})
	}
}
