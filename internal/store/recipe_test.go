package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"foodgram/internal/database"
	"foodgram/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestRecipeFilterWhere(t *testing.T) {
	build := func(f RecipeFilter) (string, []any) {
		q := psql.Select("r.id").From("recipes r")
		if w := f.where(); len(w) > 0 {
			q = q.Where(w)
		}
		sql, args, err := q.ToSql()
		require.NoError(t, err)
		return sql, args
	}

	sql, args := build(RecipeFilter{})
	require.Equal(t, "SELECT r.id FROM recipes r", sql)
	require.Empty(t, args)

	author := 4
	sql, args = build(RecipeFilter{
		ViewerID:       2,
		Favorited:      true,
		InShoppingCart: true,
		AuthorID:       &author,
		Tags:           []string{"breakfast", "lunch"},
	})
	require.Contains(t, sql, "fv.user_id = $1")
	require.Contains(t, sql, "sc.user_id = $2")
	require.Contains(t, sql, "r.author_id = $3")
	require.Contains(t, sql, "t.slug = ANY($4)")
	require.Equal(t, []any{2, 2, 4, []string{"breakfast", "lunch"}}, args)
}

func recipeRow(id int, now time.Time) []any {
	return []any{
		id, 1, "Soup", "recipes/images/a.png", "Boil.", 30, now,
		"a@b.c", "alice", "Alice", "Smith",
		false, true, false,
	}
}

func TestListRecipes(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	var sqls []string
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.True(t, strings.HasPrefix(sql, "SELECT COUNT(*) FROM recipes r WHERE"), sql)
			require.Equal(t, []any{[]string{"soup"}}, args)
			return &database.FakeRow{Values: []any{2}}
		},
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			sqls = append(sqls, sql)
			switch {
			case strings.Contains(sql, "FROM recipe_tags rt"):
				require.Equal(t, []any{[]int{11, 10}}, args)
				return &database.FakeRows{Data: [][]any{
					{10, 1, "Soup", "#FFFFFF", "soup"},
				}}, nil
			case strings.Contains(sql, "FROM recipe_ingredients ri"):
				return &database.FakeRows{Data: [][]any{
					{11, 3, "salt", "g", 5},
					{10, 4, "water", "ml", 500},
				}}, nil
			default:
				require.Contains(t, sql, "ORDER BY r.id DESC LIMIT 6 OFFSET 0")
				require.Equal(t, []any{9, 9, 9, []string{"soup"}}, args)
				return &database.FakeRows{Data: [][]any{recipeRow(11, now), recipeRow(10, now)}}, nil
			}
		},
	}

	recipes, total, err := ListRecipes(ctx, db, RecipeFilter{ViewerID: 9, Tags: []string{"soup"}, Limit: 6})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, sqls, 3)
	require.Len(t, recipes, 2)

	require.Equal(t, 11, recipes[0].ID)
	require.Equal(t, 1, recipes[0].Author.ID)
	require.Equal(t, "alice", recipes[0].Author.Username)
	require.True(t, recipes[0].IsFavorited)
	require.Empty(t, recipes[0].Tags)
	require.Equal(t, "salt", recipes[0].Ingredients[0].Name)

	require.Equal(t, []model.Tag{{ID: 1, Name: "Soup", Color: "#FFFFFF", Slug: "soup"}}, recipes[1].Tags)
	require.Equal(t, 500, recipes[1].Ingredients[0].Amount)
}

func TestListRecipesErrors(t *testing.T) {
	ctx := context.Background()

	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &database.FakeRow{Err: errors.New("count")}
		},
	}
	_, _, err := ListRecipes(ctx, db, RecipeFilter{Limit: 6})
	require.Error(t, err)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Values: []any{0}}
	}
	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{}, nil
	}
	recipes, total, err := ListRecipes(ctx, db, RecipeFilter{Limit: 6})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, recipes)
}

func TestGetRecipeDetail(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &database.FakeRow{Err: pgx.ErrNoRows}
		},
	}
	_, err := GetRecipeDetail(ctx, db, 0, 1)
	require.ErrorIs(t, err, ErrNotFound)

	db.QueryRowFn = func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "WHERE r.id = $4")
		return &database.FakeRow{Values: recipeRow(5, now)}
	}
	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
		return &database.FakeRows{}, nil
	}
	d, err := GetRecipeDetail(ctx, db, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 5, d.ID)
	require.NotNil(t, d.Tags)
	require.NotNil(t, d.Ingredients)
}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("commits", func(t *testing.T) {
		var execs []string
		var execArgs [][]any
		tx := &database.FakeTx{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO recipes")
				return &database.FakeRow{Values: []any{10, now}}
			},
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				execs = append(execs, sql)
				execArgs = append(execArgs, args)
				return pgconn.CommandTag{}, nil
			},
		}
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return tx, nil }}

		r := &model.Recipe{AuthorID: 1, Name: "Soup", CookingTime: 5}
		err := CreateRecipe(ctx, db, r,
			[]model.IngredientAmount{{IngredientID: 3, Amount: 200}, {IngredientID: 4, Amount: 1}},
			[]int{7},
		)
		require.NoError(t, err)
		require.True(t, tx.Committed)
		require.Equal(t, 10, r.ID)
		require.Len(t, execs, 2)
		require.Contains(t, execs[0], "INSERT INTO recipe_ingredients")
		require.Equal(t, []any{10, 3, 200, 10, 4, 1}, execArgs[0])
		require.Contains(t, execs[1], "INSERT INTO recipe_tags")
		require.Equal(t, []any{10, 7}, execArgs[1])
	})

	t.Run("rolls back on link failure", func(t *testing.T) {
		tx := &database.FakeTx{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &database.FakeRow{Values: []any{10, now}}
			},
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"}
			},
		}
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return tx, nil }}

		err := CreateRecipe(ctx, db, &model.Recipe{}, []model.IngredientAmount{{IngredientID: 99, Amount: 1}}, []int{1})
		require.ErrorIs(t, err, ErrNotFound)
		require.True(t, tx.RolledBack)
		require.False(t, tx.Committed)
	})

	t.Run("begin fails", func(t *testing.T) {
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return nil, errors.New("pool closed") }}
		require.Error(t, CreateRecipe(ctx, db, &model.Recipe{}, nil, nil))
	})
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("scalars and tags", func(t *testing.T) {
		var execs []string
		tx := &database.FakeTx{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				execs = append(execs, sql)
				if strings.HasPrefix(sql, "UPDATE") {
					require.Equal(t, "UPDATE recipes SET cooking_time = $1, name = $2 WHERE id = $3", sql)
					require.Equal(t, []any{15, "Stew", 3}, args)
					return pgconn.NewCommandTag("UPDATE 1"), nil
				}
				return pgconn.CommandTag{}, nil
			},
		}
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return tx, nil }}

		name, minutes := "Stew", 15
		tags := []int{1, 2}
		err := UpdateRecipe(ctx, db, 3, RecipeUpdate{Name: &name, CookingTime: &minutes, Tags: &tags})
		require.NoError(t, err)
		require.True(t, tx.Committed)
		require.Len(t, execs, 3)
		require.Equal(t, "DELETE FROM recipe_tags WHERE recipe_id = $1", execs[1])
		require.Contains(t, execs[2], "INSERT INTO recipe_tags")
	})

	t.Run("replaces ingredients", func(t *testing.T) {
		var execs []string
		tx := &database.FakeTx{
			ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
				execs = append(execs, sql)
				return pgconn.CommandTag{}, nil
			},
		}
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return tx, nil }}

		items := []model.IngredientAmount{{IngredientID: 1, Amount: 2}}
		require.NoError(t, UpdateRecipe(ctx, db, 3, RecipeUpdate{Ingredients: &items}))
		require.Equal(t, []string{
			"DELETE FROM recipe_ingredients WHERE recipe_id = $1",
			"INSERT INTO recipe_ingredients (recipe_id,ingredient_id,amount) VALUES ($1,$2,$3)",
		}, execs)
	})

	t.Run("missing recipe", func(t *testing.T) {
		tx := &database.FakeTx{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		db := &database.FakeDB{BeginFn: func(context.Context) (database.Tx, error) { return tx, nil }}

		text := "x"
		err := UpdateRecipe(ctx, db, 3, RecipeUpdate{Text: &text})
		require.ErrorIs(t, err, ErrNotFound)
		require.True(t, tx.RolledBack)
	})
}

func TestGetAndDeleteRecipe(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &database.FakeRow{Values: []any{1, 2, "Soup", "recipes/images/a.png", "t", 5, now}}
		},
	}
	r, err := GetRecipe(ctx, db, 1)
	require.NoError(t, err)
	require.Equal(t, 2, r.AuthorID)

	db.QueryRowFn = func(_ context.Context, sql string, _ ...any) pgx.Row {
		require.Equal(t, "DELETE FROM recipes WHERE id = $1 RETURNING image", sql)
		return &database.FakeRow{Values: []any{"recipes/images/a.png"}}
	}
	image, err := DeleteRecipe(ctx, db, 1)
	require.NoError(t, err)
	require.Equal(t, "recipes/images/a.png", image)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = DeleteRecipe(ctx, db, 1)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = GetRecipe(ctx, db, 1)
	require.ErrorIs(t, err, ErrNotFound)
}
