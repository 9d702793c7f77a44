package store

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/database"
	"foodgram/internal/model"

	sq "github.com/Masterminds/squirrel"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListIngredients 回傳名稱以 prefix 開頭的食材 (不分大小寫)，prefix 為空時回傳全部
func ListIngredients(ctx context.Context, db database.Querier, prefix string) ([]model.Ingredient, error) {
	q := psql.Select("id", "name", "measurement_unit").From("ingredients").OrderBy("name", "id")
	if prefix != "" {
		q = q.Where(sq.Like{"lower(name)": strings.ToLower(likeEscaper.Replace(prefix)) + "%"})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListIngredients: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListIngredients: %w", err)
	}
	defer rows.Close()

	items := []model.Ingredient{}
	for rows.Next() {
		var i model.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("ListIngredients: scan: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListIngredients: %w", err)
	}
	return items, nil
}

func GetIngredient(ctx context.Context, db database.Querier, id int) (*model.Ingredient, error) {
	i := &model.Ingredient{}
	err := db.QueryRow(ctx, `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id).
		Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if err != nil {
		return nil, fmt.Errorf("GetIngredient: %w", classify(err))
	}
	return i, nil
}

// MissingIngredientIDs 回傳 ids 中不存在的食材 ID
func MissingIngredientIDs(ctx context.Context, db database.Querier, ids []int) ([]int, error) {
	missing, err := missingIDs(ctx, db, "ingredients", ids)
	if err != nil {
		return nil, fmt.Errorf("MissingIngredientIDs: %w", err)
	}
	return missing, nil
}
