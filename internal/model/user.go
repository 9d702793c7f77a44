// File: internal/model/user.go
package model

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Author 是特定觀看者眼中的使用者
type Author struct {
	User
	IsSubscribed bool
}

// Subscription 是追蹤的作者及其部分食譜
type Subscription struct {
	Author
	Recipes      []RecipeShort
	RecipesCount int
}
