package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"

	"github.com/jackc/pgx/v5"
)

// CreateIdea 在同一個 transaction 內新增 idea 並連結標籤
func CreateIdea(ctx context.Context, db database.DB, idea *model.Idea, tags []string) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO ideas (writer_id, category_id, title, content)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			idea.WriterID,
			idea.CategoryID,
			idea.Title,
			idea.Content,
		).Scan(&idea.ID, &idea.CreatedAt); err != nil {
			return translate(err)
		}
		return linkTags(ctx, tx, idea.ID, tags)
	})
	if err != nil {
		return fmt.Errorf("CreateIdea: %w", err)
	}
	return nil
}

// UpdateIdea 更新 idea；replaceTags 為 true 時以 tags 取代原有標籤
func UpdateIdea(ctx context.Context, db database.DB, idea *model.Idea, tags []string, replaceTags bool) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE ideas SET category_id = $1, title = $2, content = $3
			 WHERE id = $4 AND deleted = false`,
			idea.CategoryID,
			idea.Title,
			idea.Content,
			idea.ID,
		)
		if err != nil {
			return translate(err)
		}
		if err := affected(tag); err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM ideas_tags WHERE idea_id = $1`, idea.ID); err != nil {
			return err
		}
		return linkTags(ctx, tx, idea.ID, tags)
	})
	if err != nil {
		return fmt.Errorf("UpdateIdea: %w", err)
	}
	return nil
}

// DeleteIdea 軟刪除 idea 並解除所有標籤連結
func DeleteIdea(ctx context.Context, db database.DB, id int) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE ideas SET deleted = true WHERE id = $1 AND deleted = false`,
			id,
		)
		if err != nil {
			return err
		}
		if err := affected(tag); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM ideas_tags WHERE idea_id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("DeleteIdea: %w", err)
	}
	return nil
}

// GetIdeaWriter 回傳未刪除 idea 的作者 ID，用於權限檢查
func GetIdeaWriter(ctx context.Context, db database.Querier, id int) (int, error) {
	var writerID int
	if err := db.QueryRow(ctx,
		`SELECT writer_id FROM ideas WHERE id = $1 AND deleted = false`,
		id,
	).Scan(&writerID); err != nil {
		return 0, fmt.Errorf("GetIdeaWriter: %w", translate(err))
	}
	return writerID, nil
}

// AdjustCounter 將計數欄位加上 delta，不做下限檢查
func AdjustCounter(ctx context.Context, db database.Querier, id int, counter model.Counter, delta int) error {
	var column string
	switch counter {
	case model.CounterViews, model.CounterScraps, model.CounterComments:
		column = string(counter)
	default:
		return fmt.Errorf("AdjustCounter: unknown counter %q", counter)
	}
	tag, err := db.Exec(ctx,
		`UPDATE ideas SET `+column+` = `+column+` + $1 WHERE id = $2 AND deleted = false`,
		delta,
		id,
	)
	if err != nil {
		return fmt.Errorf("AdjustCounter: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("AdjustCounter: %w", err)
	}
	return nil
}

// linkTags 建立或沿用同名標籤（不分大小寫，保留第一次的寫法），再連結到 idea
func linkTags(ctx context.Context, q database.Querier, ideaID int, names []string) error {
	for _, name := range names {
		var tagID int
		if err := q.QueryRow(ctx,
			`INSERT INTO tags (name) VALUES ($1)
			 ON CONFLICT (lower(name)) DO UPDATE SET name = tags.name
			 RETURNING id`,
			name,
		).Scan(&tagID); err != nil {
			return fmt.Errorf("upsert tag %q: %w", name, err)
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO ideas_tags (idea_id, tag_id) VALUES ($1, $2)
			 ON CONFLICT (idea_id, tag_id) DO NOTHING`,
			ideaID,
			tagID,
		); err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}
