// File: internal/handler/ingredients/ingredient.go
package ingredients

import (
	"errors"
	"net/http"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listIngredients = store.ListIngredients
	getIngredient   = store.GetIngredient
)

// ListIngredientsHandler 依名稱前綴搜尋食材 (不分大小寫)
// @Summary     List ingredients
// @Tags        ingredients
// @Produce     json
// @Param       name query    string false "名稱前綴"
// @Success     200  {array}  api.IngredientResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /ingredients [get]
func ListIngredientsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := listIngredients(c.Request().Context(), db, c.QueryParam("name"))
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewIngredientResponses(items))
	}
}

// @Summary     Get an ingredient
// @Tags        ingredients
// @Produce     json
// @Param       id  path     int true "食材 ID"
// @Success     200 {object} api.IngredientResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ingredients/{id} [get]
func GetIngredientHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := api.ParseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "ingredient not found"})
		}
		item, err := getIngredient(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "ingredient not found"})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewIngredientResponse(*item))
	}
}
