package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"
)

const userColumns = `id, role, nickname, login_id, password_hash, deleted, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Role,
		&u.Nickname,
		&u.LoginID,
		&u.PasswordHash,
		&u.Deleted,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE deleted = false ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// GetUserByID 只回傳未刪除的使用者
func GetUserByID(ctx context.Context, db database.Querier, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1 AND deleted = false`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

// GetUserByLoginID 包含已刪除的使用者，由呼叫端判斷 Deleted
func GetUserByLoginID(ctx context.Context, db database.Querier, loginID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE login_id = $1`,
		loginID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByLoginID: %w", translate(err))
	}
	return u, nil
}

// NicknameTaken 檢查暱稱是否已被 excludeID 以外的使用者使用
func NicknameTaken(ctx context.Context, db database.Querier, nickname string, excludeID int) (bool, error) {
	var taken bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE nickname = $1 AND id <> $2)`,
		nickname,
		excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("NicknameTaken: %w", err)
	}
	return taken, nil
}

func LoginIDTaken(ctx context.Context, db database.Querier, loginID string, excludeID int) (bool, error) {
	var taken bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login_id = $1 AND id <> $2)`,
		loginID,
		excludeID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("LoginIDTaken: %w", err)
	}
	return taken, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) error {
	row := db.QueryRow(ctx,
		`INSERT INTO users (role, nickname, login_id, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Role,
		u.Nickname,
		u.LoginID,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return fmt.Errorf("CreateUser: %w", translate(err))
	}
	return nil
}

// UpdateUser 更新暱稱、登入帳號與密碼，角色不變
func UpdateUser(ctx context.Context, db database.Querier, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET nickname = $1, login_id = $2, password_hash = $3
		 WHERE id = $4 AND deleted = false`,
		u.Nickname,
		u.LoginID,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", translate(err))
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

func UpdateUserRole(ctx context.Context, db database.Querier, userID int, role model.Role) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET role = $1 WHERE id = $2 AND deleted = false`,
		role,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserRole: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("UpdateUserRole: %w", err)
	}
	return nil
}

// DeleteUser 軟刪除
func DeleteUser(ctx context.Context, db database.Querier, userID int) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET deleted = true WHERE id = $1 AND deleted = false`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
