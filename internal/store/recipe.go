package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"
	"foodgram/internal/model"

	sq "github.com/Masterminds/squirrel"
)

// Postgres 預設的外鍵名稱，可用 ConstraintName 比對
const (
	FKRecipeAuthor     = "recipes_author_id_fkey"
	FKRecipeIngredient = "recipe_ingredients_ingredient_id_fkey"
	FKRecipeTag        = "recipe_tags_tag_id_fkey"
)

func scanRecipeDetail(row interface{ Scan(...any) error }, d *model.RecipeDetail) error {
	err := row.Scan(
		&d.ID,
		&d.AuthorID,
		&d.Name,
		&d.Image,
		&d.Text,
		&d.CookingTime,
		&d.CreatedAt,
		&d.Author.Email,
		&d.Author.Username,
		&d.Author.FirstName,
		&d.Author.LastName,
		&d.Author.IsSubscribed,
		&d.IsFavorited,
		&d.IsInShoppingCart,
	)
	d.Author.ID = d.AuthorID
	return err
}

// ListRecipes 回傳符合 f 的一頁食譜 (新的在前) 以及符合的總數
func ListRecipes(ctx context.Context, db database.Querier, f RecipeFilter) ([]model.RecipeDetail, int, error) {
	where := f.where()

	count := psql.Select("COUNT(*)").From("recipes r")
	page := recipeDetailQuery(f.ViewerID).OrderBy("r.id DESC").Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	if len(where) > 0 {
		count = count.Where(where)
		page = page.Where(where)
	}

	query, args, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: %w", err)
	}
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: count: %w", err)
	}

	query, args, err = page.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: %w", err)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.RecipeDetail{}
	for rows.Next() {
		var d model.RecipeDetail
		if err := scanRecipeDetail(rows, &d); err != nil {
			return nil, 0, fmt.Errorf("ListRecipes: scan: %w", err)
		}
		recipes = append(recipes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: %w", err)
	}
	rows.Close()

	if err := attachRelations(ctx, db, recipes); err != nil {
		return nil, 0, fmt.Errorf("ListRecipes: %w", err)
	}
	return recipes, total, nil
}

// GetRecipeDetail 回傳單一食譜的完整讀取資料
func GetRecipeDetail(ctx context.Context, db database.Querier, viewerID, id int) (*model.RecipeDetail, error) {
	query, args, err := recipeDetailQuery(viewerID).Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetRecipeDetail: %w", err)
	}
	d := model.RecipeDetail{}
	if err := scanRecipeDetail(db.QueryRow(ctx, query, args...), &d); err != nil {
		return nil, fmt.Errorf("GetRecipeDetail: %w", classify(err))
	}
	list := []model.RecipeDetail{d}
	if err := attachRelations(ctx, db, list); err != nil {
		return nil, fmt.Errorf("GetRecipeDetail: %w", err)
	}
	return &list[0], nil
}

// attachRelations 以兩個查詢載入所有食譜的標籤與食材
func attachRelations(ctx context.Context, db database.Querier, recipes []model.RecipeDetail) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]int, len(recipes))
	index := make(map[int]int, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		index[r.ID] = i
		recipes[i].Tags = []model.Tag{}
		recipes[i].Ingredients = []model.RecipeIngredient{}
	}

	rows, err := db.Query(ctx,
		`SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		 FROM recipe_tags rt
		 JOIN tags t ON t.id = rt.tag_id
		 WHERE rt.recipe_id = ANY($1)
		 ORDER BY t.name, t.id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	for rows.Next() {
		var recipeID int
		var t model.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			rows.Close()
			return fmt.Errorf("load tags: scan: %w", err)
		}
		i := index[recipeID]
		recipes[i].Tags = append(recipes[i].Tags, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}

	rows, err = db.Query(ctx,
		`SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ANY($1)
		 ORDER BY ri.id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID int
		var ri model.RecipeIngredient
		if err := rows.Scan(&recipeID, &ri.ID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return fmt.Errorf("load ingredients: scan: %w", err)
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, ri)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	return nil
}

// GetRecipe 回傳食譜本身的資料列
func GetRecipe(ctx context.Context, db database.Querier, id int) (*model.Recipe, error) {
	r := &model.Recipe{}
	err := db.QueryRow(ctx,
		`SELECT id, author_id, name, image, text, cooking_time, created_at
		 FROM recipes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("GetRecipe: %w", classify(err))
	}
	return r, nil
}

// CreateRecipe 在同一交易中新增食譜及其食材與標籤關聯，成功後設定 r.ID 與 r.CreatedAt
func CreateRecipe(ctx context.Context, db database.DB, r *model.Recipe, ingredients []model.IngredientAmount, tagIDs []int) error {
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO recipes (author_id, name, image, text, cooking_time)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			r.AuthorID, r.Name, r.Image, r.Text, r.CookingTime,
		).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			return classify(err)
		}
		if err := insertRecipeIngredients(ctx, tx, r.ID, ingredients); err != nil {
			return err
		}
		return insertRecipeTags(ctx, tx, r.ID, tagIDs)
	})
	if err != nil {
		return fmt.Errorf("CreateRecipe: %w", err)
	}
	return nil
}

// RecipeUpdate 是部分更新；nil 欄位不變，
// Ingredients 或 Tags 非 nil 時整批取代原有關聯
type RecipeUpdate struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	Ingredients *[]model.IngredientAmount
	Tags        *[]int
}

func (u RecipeUpdate) columns() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Text != nil {
		m["text"] = *u.Text
	}
	if u.CookingTime != nil {
		m["cooking_time"] = *u.CookingTime
	}
	if u.Image != nil {
		m["image"] = *u.Image
	}
	return m
}

// UpdateRecipe 在同一交易中將 u 套用到食譜 id
func UpdateRecipe(ctx context.Context, db database.DB, id int, u RecipeUpdate) error {
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		if cols := u.columns(); len(cols) > 0 {
			query, args, err := psql.Update("recipes").SetMap(cols).Where(sq.Eq{"id": id}).ToSql()
			if err != nil {
				return err
			}
			tag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return classify(err)
			}
			if tag.RowsAffected() == 0 {
				return ErrNotFound
			}
		}
		if u.Ingredients != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
				return err
			}
			if err := insertRecipeIngredients(ctx, tx, id, *u.Ingredients); err != nil {
				return err
			}
		}
		if u.Tags != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
				return err
			}
			if err := insertRecipeTags(ctx, tx, id, *u.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("UpdateRecipe: %w", err)
	}
	return nil
}

// DeleteRecipe 刪除食譜，關聯、收藏與購物車資料透過 ON DELETE CASCADE 一併刪除；
// 回傳已儲存的圖片路徑
func DeleteRecipe(ctx context.Context, db database.Querier, id int) (string, error) {
	var image string
	if err := db.QueryRow(ctx, `DELETE FROM recipes WHERE id = $1 RETURNING image`, id).Scan(&image); err != nil {
		return "", fmt.Errorf("DeleteRecipe: %w", classify(err))
	}
	return image, nil
}

func insertRecipeIngredients(ctx context.Context, db database.Querier, recipeID int, items []model.IngredientAmount) error {
	if len(items) == 0 {
		return nil
	}
	ins := psql.Insert("recipe_ingredients").Columns("recipe_id", "ingredient_id", "amount")
	for _, it := range items {
		ins = ins.Values(recipeID, it.IngredientID, it.Amount)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

func insertRecipeTags(ctx context.Context, db database.Querier, recipeID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	ins := psql.Insert("recipe_tags").Columns("recipe_id", "tag_id")
	for _, id := range tagIDs {
		ins = ins.Values(recipeID, id)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}
