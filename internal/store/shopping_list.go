package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"
	"foodgram/internal/model"
)

// ShoppingList 加總使用者購物車內所有食譜的食材，
// 每個 (name, unit) 一列，依名稱再依單位排序；購物車為空時回傳空 slice
func ShoppingList(ctx context.Context, db database.Querier, userID int) ([]model.ShoppingItem, error) {
	rows, err := db.Query(ctx,
		`SELECT i.name, i.measurement_unit, SUM(ri.amount)
		 FROM shopping_carts sc
		 JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE sc.user_id = $1
		 GROUP BY i.name, i.measurement_unit
		 ORDER BY i.name, i.measurement_unit`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ShoppingList: %w", err)
	}
	defer rows.Close()

	items := []model.ShoppingItem{}
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.Name, &it.MeasurementUnit, &it.Amount); err != nil {
			return nil, fmt.Errorf("ShoppingList: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ShoppingList: %w", err)
	}
	return items, nil
}
