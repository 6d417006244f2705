// File: internal/model/category.go
package model

type Category struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Deleted bool   `db:"deleted" json:"deleted"`
}
