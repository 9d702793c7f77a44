package store

import (
	"context"
	"fmt"

	"foodgram/internal/database"

	sq "github.com/Masterminds/squirrel"
)

// edge 是受唯一約束保護的 (subject, object) 配對資料表
type edge struct {
	table   string
	subject string
	object  string
}

var (
	favouriteEdge    = edge{table: "favourites", subject: "user_id", object: "recipe_id"}
	shoppingCartEdge = edge{table: "shopping_carts", subject: "user_id", object: "recipe_id"}
	followEdge       = edge{table: "follows", subject: "user_id", object: "following_id"}
)

// add 新增配對；已存在回傳 ErrDuplicate，object 不存在回傳 ErrNotFound
func (e edge) add(ctx context.Context, db database.Querier, subjectID, objectID int) error {
	query, args, err := psql.Insert(e.table).
		Columns(e.subject, e.object).
		Values(subjectID, objectID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

// remove 刪除配對，不存在時回傳 ErrNotFound
func (e edge) remove(ctx context.Context, db database.Querier, subjectID, objectID int) error {
	query, args, err := psql.Delete(e.table).
		Where(sq.Eq{e.subject: subjectID, e.object: objectID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func AddFavourite(ctx context.Context, db database.Querier, userID, recipeID int) error {
	if err := favouriteEdge.add(ctx, db, userID, recipeID); err != nil {
		return fmt.Errorf("AddFavourite: %w", err)
	}
	return nil
}

func RemoveFavourite(ctx context.Context, db database.Querier, userID, recipeID int) error {
	if err := favouriteEdge.remove(ctx, db, userID, recipeID); err != nil {
		return fmt.Errorf("RemoveFavourite: %w", err)
	}
	return nil
}

func AddToShoppingCart(ctx context.Context, db database.Querier, userID, recipeID int) error {
	if err := shoppingCartEdge.add(ctx, db, userID, recipeID); err != nil {
		return fmt.Errorf("AddToShoppingCart: %w", err)
	}
	return nil
}

func RemoveFromShoppingCart(ctx context.Context, db database.Querier, userID, recipeID int) error {
	if err := shoppingCartEdge.remove(ctx, db, userID, recipeID); err != nil {
		return fmt.Errorf("RemoveFromShoppingCart: %w", err)
	}
	return nil
}

// Follow 讓 userID 追蹤 authorID；追蹤自己會被 follow_not_self 約束擋下，回傳 ErrInvalid
func Follow(ctx context.Context, db database.Querier, userID, authorID int) error {
	if err := followEdge.add(ctx, db, userID, authorID); err != nil {
		return fmt.Errorf("Follow: %w", err)
	}
	return nil
}

func Unfollow(ctx context.Context, db database.Querier, userID, authorID int) error {
	if err := followEdge.remove(ctx, db, userID, authorID); err != nil {
		return fmt.Errorf("Unfollow: %w", err)
	}
	return nil
}
