package recipes

import (
	"context"
	"net/http"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/media"
	"foodgram/internal/model"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestFavoriteHandlers(t *testing.T) {
	e := echo.New()
	storage := &media.FakeStorage{}
	existing := func(_ context.Context, _ database.Querier, id int) (*model.Recipe, error) {
		return &model.Recipe{ID: id, Name: "Soup", Image: "recipes/images/s.png", CookingTime: 30}, nil
	}

	t.Run("unknown recipe", func(t *testing.T) {
		t.Cleanup(restore)
		getRecipe = func(context.Context, database.Querier, int) (*model.Recipe, error) { return nil, store.ErrNotFound }
		ctx, rec := newCtx(e, http.MethodPost, "/", "", "5")
		login(ctx, 1)
		require.NoError(t, AddFavoriteHandler(nil, storage)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("add", func(t *testing.T) {
		t.Cleanup(restore)
		getRecipe = existing
		addFavourite = func(_ context.Context, _ database.Querier, uid, rid int) error {
			require.Equal(t, 1, uid)
			require.Equal(t, 5, rid)
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPost, "/", "", "5")
		login(ctx, 1)
		require.NoError(t, AddFavoriteHandler(nil, storage)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t, `{"id":5,"name":"Soup","image":"http://media.test/recipes/images/s.png","cooking_time":30}`, rec.Body.String())
	})

	t.Run("add twice", func(t *testing.T) {
		t.Cleanup(restore)
		getRecipe = existing
		addFavourite = func(context.Context, database.Querier, int, int) error { return store.ErrDuplicate }
		ctx, rec := newCtx(e, http.MethodPost, "/", "", "5")
		login(ctx, 1)
		require.NoError(t, AddFavoriteHandler(nil, storage)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "already in favorites")
	})

	t.Run("remove absent", func(t *testing.T) {
		t.Cleanup(restore)
		getRecipe = existing
		removeFavourite = func(context.Context, database.Querier, int, int) error { return store.ErrNotFound }
		ctx, rec := newCtx(e, http.MethodDelete, "/", "", "5")
		login(ctx, 1)
		require.NoError(t, RemoveFavoriteHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "not in favorites")
	})
}

func TestShoppingCartHandlers(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	getRecipe = func(_ context.Context, _ database.Querier, id int) (*model.Recipe, error) {
		return &model.Recipe{ID: id}, nil
	}
	var added, removed bool
	addToShoppingCart = func(context.Context, database.Querier, int, int) error { added = true; return nil }
	removeFromShoppingCart = func(context.Context, database.Querier, int, int) error { removed = true; return nil }
	addFavourite = func(context.Context, database.Querier, int, int) error {
		t.Fatal("favourites must not be touched")
		return nil
	}

	ctx, rec := newCtx(e, http.MethodPost, "/", "", "5")
	login(ctx, 1)
	require.NoError(t, AddToShoppingCartHandler(nil, &media.FakeStorage{})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, added)

	ctx, rec = newCtx(e, http.MethodDelete, "/", "", "5")
	login(ctx, 1)
	require.NoError(t, RemoveFromShoppingCartHandler(nil)(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, removed)
}

func TestDownloadShoppingCartHandler(t *testing.T) {
	e := echo.New()

	t.Run("empty cart", func(t *testing.T) {
		t.Cleanup(restore)
		shoppingList = func(context.Context, database.Querier, int) ([]model.ShoppingItem, error) { return nil, nil }
		ctx, rec := newCtx(e, http.MethodGet, "/", "", "")
		login(ctx, 1)
		require.NoError(t, DownloadShoppingCartHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		shoppingList = func(_ context.Context, _ database.Querier, uid int) ([]model.ShoppingItem, error) {
			require.Equal(t, 1, uid)
			return []model.ShoppingItem{
				{Name: "flour", MeasurementUnit: "g", Amount: 500},
				{Name: "sugar", MeasurementUnit: "g", Amount: 300},
			}, nil
		}
		ctx, rec := newCtx(e, http.MethodGet, "/", "", "")
		login(ctx, 1)
		require.NoError(t, DownloadShoppingCartHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "flour (g) - 500\nsugar (g) - 300\n", rec.Body.String())
		require.Equal(t, `attachment; filename="shopping_list.txt"`, rec.Header().Get(echo.HeaderContentDisposition))
		require.Equal(t, echo.MIMETextPlainCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	})
}
