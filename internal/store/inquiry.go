package store

import (
	"context"
	"fmt"

	"jieum/internal/database"
	"jieum/internal/model"
)

// ListInquiries 回傳所有問題回報與提出者，不含密碼
func ListInquiries(ctx context.Context, db database.Querier) ([]model.InquiryUser, error) {
	rows, err := db.Query(ctx,
		`SELECT q.id, q.user_id, q.status, q.deleted, q.created_at,
		        u.id, u.role, u.nickname, u.login_id, u.deleted, u.created_at
		 FROM inquiries q
		 JOIN users u ON u.id = q.user_id
		 WHERE q.deleted = false
		 ORDER BY q.created_at DESC, q.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListInquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []model.InquiryUser{}
	for rows.Next() {
		var iu model.InquiryUser
		if err := rows.Scan(
			&iu.Inquiry.ID, &iu.Inquiry.UserID, &iu.Inquiry.Status, &iu.Inquiry.Deleted, &iu.Inquiry.CreatedAt,
			&iu.User.ID, &iu.User.Role, &iu.User.Nickname, &iu.User.LoginID, &iu.User.Deleted, &iu.User.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListInquiries: %w", err)
		}
		inquiries = append(inquiries, iu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListInquiries: %w", err)
	}
	return inquiries, nil
}

func CreateInquiry(ctx context.Context, db database.Querier, q *model.Inquiry) error {
	if err := db.QueryRow(ctx,
		`INSERT INTO inquiries (user_id) VALUES ($1)
		 RETURNING id, status, created_at`,
		q.UserID,
	).Scan(&q.ID, &q.Status, &q.CreatedAt); err != nil {
		return fmt.Errorf("CreateInquiry: %w", translate(err))
	}
	return nil
}

func UpdateInquiryStatus(ctx context.Context, db database.Querier, id int, status model.InquiryStatus) error {
	tag, err := db.Exec(ctx,
		`UPDATE inquiries SET status = $1 WHERE id = $2 AND deleted = false`,
		status,
		id,
	)
	if err != nil {
		return fmt.Errorf("UpdateInquiryStatus: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("UpdateInquiryStatus: %w", err)
	}
	return nil
}

// DeleteInquiry 直接刪除資料列
func DeleteInquiry(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteInquiry: %w", err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("DeleteInquiry: %w", err)
	}
	return nil
}
