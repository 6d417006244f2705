// File: internal/model/idea.go
package model

import "time"

type Idea struct {
	ID           int       `db:"id" json:"id"`
	WriterID     int       `db:"writer_id" json:"writerId"`
	CategoryID   int       `db:"category_id" json:"categoryId"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	ViewCount    int       `db:"view_count" json:"viewCount"`
	ScrapCount   int       `db:"scrap_count" json:"scrapCount"`
	CommentCount int       `db:"comment_count" json:"commentCount"`
	Deleted      bool      `db:"deleted" json:"deleted"`
}

// Counter 為 ideas 表中可以 +1/-1 的計數欄位
type Counter string

const (
	CounterViews    Counter = "view_count"
	CounterScraps   Counter = "scrap_count"
	CounterComments Counter = "comment_count"
)
