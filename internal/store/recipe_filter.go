package store

import (
	sq "github.com/Masterminds/squirrel"
)

// RecipeFilter 篩選食譜列表，零值不做限制
type RecipeFilter struct {
	// ViewerID 是發出請求的使用者，匿名為 0；
	// 用於計算旗標以及 Favorited/InShoppingCart 篩選
	ViewerID       int
	Favorited      bool
	InShoppingCart bool
	AuthorID       *int
	// Tags 保留至少帶有其中一個 slug 的食譜
	Tags   []string
	Limit  int
	Offset int
}

func (f RecipeFilter) where() sq.And {
	w := sq.And{}
	if f.Favorited {
		w = append(w, sq.Expr(
			"EXISTS (SELECT 1 FROM favourites fv WHERE fv.recipe_id = r.id AND fv.user_id = ?)", f.ViewerID))
	}
	if f.InShoppingCart {
		w = append(w, sq.Expr(
			"EXISTS (SELECT 1 FROM shopping_carts sc WHERE sc.recipe_id = r.id AND sc.user_id = ?)", f.ViewerID))
	}
	if f.AuthorID != nil {
		w = append(w, sq.Eq{"r.author_id": *f.AuthorID})
	}
	if len(f.Tags) > 0 {
		w = append(w, sq.Expr(
			"EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id = r.id AND t.slug = ANY(?))", f.Tags))
	}
	return w
}

// recipeDetailQuery 選取食譜、作者以及三個依觀看者計算的旗標，以 scanRecipeDetail 讀取
func recipeDetailQuery(viewerID int) sq.SelectBuilder {
	return psql.Select(
		"r.id", "r.author_id", "r.name", "r.image", "r.text", "r.cooking_time", "r.created_at",
		"u.email", "u.username", "u.first_name", "u.last_name",
	).
		Column(sq.Expr("EXISTS (SELECT 1 FROM follows f WHERE f.user_id = ? AND f.following_id = r.author_id)", viewerID)).
		Column(sq.Expr("EXISTS (SELECT 1 FROM favourites fv WHERE fv.user_id = ? AND fv.recipe_id = r.id)", viewerID)).
		Column(sq.Expr("EXISTS (SELECT 1 FROM shopping_carts sc WHERE sc.user_id = ? AND sc.recipe_id = r.id)", viewerID)).
		From("recipes r").
		Join("users u ON u.id = r.author_id")
}
