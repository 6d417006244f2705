package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"
)

func ListCategories(ctx context.Context, db database.Querier) ([]model.Category, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, deleted FROM categories WHERE deleted = false ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Deleted); err != nil {
			return nil, fmt.Errorf("ListCategories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

func CreateCategory(ctx context.Context, db database.Querier, c *model.Category) error {
	if err := db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`,
		c.Name,
	).Scan(&c.ID); err != nil {
		return fmt.Errorf("CreateCategory: %w", translate(err))
	}
	return nil
}

// DeleteCategory 軟刪除，已刪除的分類回傳 ErrNotFound
func DeleteCategory(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx,
		`UPDATE categories SET deleted = true WHERE id = $1 AND deleted = false`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	return nil
}
