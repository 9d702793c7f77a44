// File: internal/handler/recipes/relation.go
package recipes

import (
	"context"
	"errors"
	"net/http"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/media"
	"foodgram/internal/middleware"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	addFavourite           = store.AddFavourite
	removeFavourite        = store.RemoveFavourite
	addToShoppingCart      = store.AddToShoppingCart
	removeFromShoppingCart = store.RemoveFromShoppingCart
)

type relationFunc func(ctx context.Context, db database.Querier, userID, recipeID int) error

// list 描述使用者的一種食譜集合，用於錯誤訊息
type list struct {
	name string
	add  func() relationFunc
	del  func() relationFunc
}

var (
	favorites = list{
		name: "favorites",
		add:  func() relationFunc { return addFavourite },
		del:  func() relationFunc { return removeFavourite },
	}
	shoppingCart = list{
		name: "shopping cart",
		add:  func() relationFunc { return addToShoppingCart },
		del:  func() relationFunc { return removeFromShoppingCart },
	}
)

func (l list) addHandler(db database.DB, storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := recipeID(c)
		if !ok {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		ctx := c.Request().Context()
		recipe, err := getRecipe(ctx, db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}

		err = l.add()(ctx, db, middleware.UserID(c), id)
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "recipe is already in " + l.name})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		case err != nil:
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewRecipeShortResponse(*recipe, storage.URL))
	}
}

func (l list) removeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := recipeID(c)
		if !ok {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		ctx := c.Request().Context()
		if _, err := getRecipe(ctx, db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errRecipeNotFound)
			}
			return api.InternalError(c, err)
		}

		err := l.del()(ctx, db, middleware.UserID(c), id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "recipe is not in " + l.name})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Add a recipe to favorites
// @Tags        recipes
// @Produce     json
// @Param       id  path     int true "食譜 ID"
// @Success     201 {object} api.RecipeShortResponse
// @Failure     400 {object} api.ErrorResponse "已收藏"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes/{id}/favorite [post]
func AddFavoriteHandler(db database.DB, storage media.Storage) echo.HandlerFunc {
	return favorites.addHandler(db, storage)
}

// @Summary     Remove a recipe from favorites
// @Tags        recipes
// @Param       id  path int true "食譜 ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "食譜不存在或未收藏"
// @Security    TokenAuth
// @Router      /recipes/{id}/favorite [delete]
func RemoveFavoriteHandler(db database.DB) echo.HandlerFunc {
	return favorites.removeHandler(db)
}

// @Summary     Add a recipe to the shopping cart
// @Tags        recipes
// @Produce     json
// @Param       id  path     int true "食譜 ID"
// @Success     201 {object} api.RecipeShortResponse
// @Failure     400 {object} api.ErrorResponse "已在購物車"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes/{id}/shopping_cart [post]
func AddToShoppingCartHandler(db database.DB, storage media.Storage) echo.HandlerFunc {
	return shoppingCart.addHandler(db, storage)
}

// @Summary     Remove a recipe from the shopping cart
// @Tags        recipes
// @Param       id  path int true "食譜 ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "食譜不存在或不在購物車"
// @Security    TokenAuth
// @Router      /recipes/{id}/shopping_cart [delete]
func RemoveFromShoppingCartHandler(db database.DB) echo.HandlerFunc {
	return shoppingCart.removeHandler(db)
}
