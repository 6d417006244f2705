// File: internal/model/user.go
package model

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type User struct {
	ID           int       `db:"id" json:"id"`
	Role         Role      `db:"role" json:"role"`
	Nickname     string    `db:"nickname" json:"nickname"`
	LoginID      string    `db:"login_id" json:"loginId"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Deleted      bool      `db:"deleted" json:"deleted"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
