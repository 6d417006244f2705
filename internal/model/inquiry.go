// File: internal/model/inquiry.go
package model

import "time"

type InquiryStatus string

const (
	InquiryPending    InquiryStatus = "pending"
	InquiryProcessing InquiryStatus = "processing"
	InquiryCompleted  InquiryStatus = "completed"
)

type Inquiry struct {
	ID        int           `db:"id" json:"id"`
	UserID    int           `db:"user_id" json:"userId"`
	Status    InquiryStatus `db:"status" json:"status"`
	Deleted   bool          `db:"deleted" json:"deleted"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
}
