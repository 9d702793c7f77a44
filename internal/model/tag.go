// File: internal/model/tag.go
package model

type Tag struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
	Slug  string `db:"slug" json:"slug"`
}
