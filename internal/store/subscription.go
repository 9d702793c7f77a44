package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"
	"foodgram/internal/model"

	sq "github.com/Masterminds/squirrel"
)

// NoRecipesLimit 表示不限制每位作者的食譜數
const NoRecipesLimit = -1

func subscriptionQuery(viewerID int) sq.SelectBuilder {
	return authorQuery(viewerID).
		Column("(SELECT COUNT(*) FROM recipes r WHERE r.author_id = u.id)")
}

func scanSubscription(row interface{ Scan(...any) error }, s *model.Subscription) error {
	return row.Scan(
		&s.ID,
		&s.Email,
		&s.Username,
		&s.FirstName,
		&s.LastName,
		&s.IsSubscribed,
		&s.RecipesCount,
	)
}

// ListSubscriptions 回傳 userID 追蹤的作者 (一頁)，
// 每位附上食譜數與最多 recipesLimit 篇最新食譜
func ListSubscriptions(ctx context.Context, db database.Querier, userID, recipesLimit, limit, offset int) ([]model.Subscription, int, error) {
	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListSubscriptions: count: %w", err)
	}

	query, args, err := subscriptionQuery(userID).
		Join("follows fo ON fo.following_id = u.id").
		Where(sq.Eq{"fo.user_id": userID}).
		OrderBy("fo.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ListSubscriptions: %w", err)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListSubscriptions: %w", err)
	}
	defer rows.Close()

	subs := []model.Subscription{}
	for rows.Next() {
		var s model.Subscription
		if err := scanSubscription(rows, &s); err != nil {
			return nil, 0, fmt.Errorf("ListSubscriptions: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListSubscriptions: %w", err)
	}
	rows.Close()

	if err := attachAuthorRecipes(ctx, db, subs, recipesLimit); err != nil {
		return nil, 0, fmt.Errorf("ListSubscriptions: %w", err)
	}
	return subs, total, nil
}

// GetSubscription 以 viewerID 的角度回傳 authorID 的追蹤資料
func GetSubscription(ctx context.Context, db database.Querier, viewerID, authorID, recipesLimit int) (*model.Subscription, error) {
	query, args, err := subscriptionQuery(viewerID).Where(sq.Eq{"u.id": authorID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetSubscription: %w", err)
	}
	s := model.Subscription{}
	if err := scanSubscription(db.QueryRow(ctx, query, args...), &s); err != nil {
		return nil, fmt.Errorf("GetSubscription: %w", classify(err))
	}
	subs := []model.Subscription{s}
	if err := attachAuthorRecipes(ctx, db, subs, recipesLimit); err != nil {
		return nil, fmt.Errorf("GetSubscription: %w", err)
	}
	return &subs[0], nil
}

// attachAuthorRecipes 以單一 window 查詢載入 subs 中每位作者的最新食譜
func attachAuthorRecipes(ctx context.Context, db database.Querier, subs []model.Subscription, recipesLimit int) error {
	if len(subs) == 0 {
		return nil
	}
	ids := make([]int, len(subs))
	index := make(map[int]int, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
		index[s.ID] = i
		subs[i].Recipes = []model.RecipeShort{}
	}
	if recipesLimit == 0 {
		return nil
	}

	ranked := psql.Select("r.id", "r.author_id", "r.name", "r.image", "r.cooking_time").
		Column("ROW_NUMBER() OVER (PARTITION BY r.author_id ORDER BY r.id DESC) AS rn").
		From("recipes r").
		Where("r.author_id = ANY(?)", ids)
	q := psql.Select("id", "author_id", "name", "image", "cooking_time").
		FromSelect(ranked, "ranked").
		OrderBy("author_id", "rn")
	if recipesLimit > 0 {
		q = q.Where(sq.LtOrEq{"rn": recipesLimit})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load author recipes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var authorID int
		var r model.RecipeShort
		if err := rows.Scan(&r.ID, &authorID, &r.Name, &r.Image, &r.CookingTime); err != nil {
			return fmt.Errorf("load author recipes: scan: %w", err)
		}
		i := index[authorID]
		subs[i].Recipes = append(subs[i].Recipes, r)
	}
	return rows.Err()
}
