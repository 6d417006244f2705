package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"
)

// CreateComment 只允許留言在未刪除的 idea 上，否則回傳 ErrNotFound
func CreateComment(ctx context.Context, db database.Querier, c *model.Comment) error {
	if err := db.QueryRow(ctx,
		`INSERT INTO comments (writer_id, idea_id, content)
		 SELECT $1, $2, $3
		 WHERE EXISTS (SELECT 1 FROM ideas WHERE id = $2 AND deleted = false)
		 RETURNING id, created_at`,
		c.WriterID,
		c.IdeaID,
		c.Content,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("CreateComment: %w", translate(err))
	}
	return nil
}

func GetCommentWriter(ctx context.Context, db database.Querier, id int) (int, error) {
	var writerID int
	if err := db.QueryRow(ctx,
		`SELECT writer_id FROM comments WHERE id = $1`,
		id,
	).Scan(&writerID); err != nil {
		return 0, fmt.Errorf("GetCommentWriter: %w", translate(err))
	}
	return writerID, nil
}

func DeleteComment(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteComment: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("DeleteComment: %w", err)
	}
	return nil
}
