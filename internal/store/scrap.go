package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"
)

// ListScrapsByUser 回傳使用者的 scrap 與對應的未刪除 idea
func ListScrapsByUser(ctx context.Context, db database.Querier, userID int) ([]model.ScrapIdea, error) {
	rows, err := db.Query(ctx,
		`SELECT s.id, s.user_id, s.idea_id, s.created_at,
		        i.id, i.writer_id, i.category_id, i.title, i.content, i.created_at,
		        i.view_count, i.scrap_count, i.comment_count, i.deleted
		 FROM scraps s
		 JOIN ideas i ON i.id = s.idea_id AND i.deleted = false
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC, s.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListScrapsByUser: %w", err)
	}
	defer rows.Close()

	scraps := []model.ScrapIdea{}
	for rows.Next() {
		var si model.ScrapIdea
		if err := rows.Scan(
			&si.Scrap.ID, &si.Scrap.UserID, &si.Scrap.IdeaID, &si.Scrap.CreatedAt,
			&si.Idea.ID, &si.Idea.WriterID, &si.Idea.CategoryID, &si.Idea.Title, &si.Idea.Content, &si.Idea.CreatedAt,
			&si.Idea.ViewCount, &si.Idea.ScrapCount, &si.Idea.CommentCount, &si.Idea.Deleted,
		); err != nil {
			return nil, fmt.Errorf("ListScrapsByUser: %w", err)
		}
		scraps = append(scraps, si)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListScrapsByUser: %w", err)
	}
	return scraps, nil
}

func CreateScrap(ctx context.Context, db database.Querier, s *model.Scrap) error {
	if err := db.QueryRow(ctx,
		`INSERT INTO scraps (user_id, idea_id)
		 SELECT $1, $2
		 WHERE EXISTS (SELECT 1 FROM ideas WHERE id = $2 AND deleted = false)
		 RETURNING id, created_at`,
		s.UserID,
		s.IdeaID,
	).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("CreateScrap: %w", translate(err))
	}
	return nil
}

func GetScrapOwner(ctx context.Context, db database.Querier, id int) (int, error) {
	var userID int
	if err := db.QueryRow(ctx,
		`SELECT user_id FROM scraps WHERE id = $1`,
		id,
	).Scan(&userID); err != nil {
		return 0, fmt.Errorf("GetScrapOwner: %w", translate(err))
	}
	return userID, nil
}

func DeleteScrap(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM scraps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteScrap: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("DeleteScrap: %w", err)
	}
	return nil
}
