// File: internal/model/scrap.go
package model

import "time"

type Scrap struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	IdeaID    int       `db:"idea_id" json:"ideaId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
