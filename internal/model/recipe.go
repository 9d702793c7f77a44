// File: internal/model/recipe.go
package model

import "time"

type Recipe struct {
	ID          int
	AuthorID    int
	Name        string
	Image       string
	Text        string
	CookingTime int
	CreatedAt   time.Time
}

// RecipeIngredient 是食譜中的一行食材
type RecipeIngredient struct {
	Ingredient
	Amount int
}

// IngredientAmount 是寫入時使用的食材數量
type IngredientAmount struct {
	IngredientID int
	Amount       int
}

// RecipeDetail 是讀取食譜所需的完整資料，依觀看者計算 (匿名為 0)
type RecipeDetail struct {
	Recipe
	Author           Author
	Tags             []Tag
	Ingredients      []RecipeIngredient
	IsFavorited      bool
	IsInShoppingCart bool
}

type RecipeShort struct {
	ID          int
	Name        string
	Image       string
	CookingTime int
}

// ShoppingItem 是購物清單加總後的一行
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}
