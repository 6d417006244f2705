// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID        int       `db:"id" json:"id"`
	WriterID  int       `db:"writer_id" json:"writerId"`
	IdeaID    int       `db:"idea_id" json:"ideaId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
