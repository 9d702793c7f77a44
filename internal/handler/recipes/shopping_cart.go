// File: internal/handler/recipes/shopping_cart.go
package recipes

import (
	"bytes"
	"fmt"
	"net/http"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var shoppingList = store.ShoppingList

// DownloadShoppingCartHandler 匯出購物清單
// @Summary     Download the shopping list
// @Description 將購物車內所有食譜的食材依名稱與單位加總，輸出純文字檔
// @Tags        recipes
// @Produce     plain
// @Success     200 {string} string "name (unit) - amount"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "購物車是空的"
// @Failure     500 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes/download_shopping_cart [get]
func DownloadShoppingCartHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := shoppingList(c.Request().Context(), db, middleware.UserID(c))
		if err != nil {
			return api.InternalError(c, err)
		}
		if len(items) == 0 {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "shopping cart is empty"})
		}

		var buf bytes.Buffer
		if err := service.WriteShoppingList(&buf, items); err != nil {
			return api.InternalError(c, err)
		}
		metrics.ShoppingListDownloads.Inc()

		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, service.ShoppingListFilename))
		return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, buf.Bytes())
	}
}
