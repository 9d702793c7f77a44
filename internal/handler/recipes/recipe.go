// File: internal/handler/recipes/recipe.go
package recipes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/logging"
	"foodgram/internal/media"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/internal/model"
	"foodgram/internal/store"
	"foodgram/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	listRecipes          = store.ListRecipes
	getRecipeDetail      = store.GetRecipeDetail
	getRecipe            = store.GetRecipe
	createRecipe         = store.CreateRecipe
	updateRecipe         = store.UpdateRecipe
	deleteRecipe         = store.DeleteRecipe
	missingTagIDs        = store.MissingTagIDs
	missingIngredientIDs = store.MissingIngredientIDs
	decodeImage          = media.DecodeDataURI
)

var errRecipeNotFound = api.ErrorResponse{Message: "recipe not found"}

// recipeID 解析 :id；不是 INTEGER 範圍內的整數就不可能對應到食譜，視為 404
func recipeID(c echo.Context) (int, bool) {
	return api.ParseID(c.Param("id"))
}

// flag 解析 0/1 形式的查詢參數
func flag(c echo.Context, name string) (bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, fmt.Errorf("%s must be an integer", name)
	}
	return n != 0, nil
}

// parseFilter 讀取 is_favorited、is_in_shopping_cart、author 與可重複的 tags
func parseFilter(c echo.Context) (store.RecipeFilter, *api.ErrorResponse) {
	f := store.RecipeFilter{ViewerID: middleware.UserID(c)}
	errs := map[string][]string{}

	var err error
	if f.Favorited, err = flag(c, "is_favorited"); err != nil {
		errs["is_favorited"] = []string{err.Error()}
	}
	if f.InShoppingCart, err = flag(c, "is_in_shopping_cart"); err != nil {
		errs["is_in_shopping_cart"] = []string{err.Error()}
	}
	if v := c.QueryParam("author"); v != "" {
		id, ok := api.ParseID(v)
		if !ok {
			errs["author"] = []string{"author must be a valid user id"}
		} else {
			f.AuthorID = &id
		}
	}
	f.Tags = c.QueryParams()["tags"]

	if len(errs) > 0 {
		return f, &api.ErrorResponse{Message: "validation failed", Errors: errs}
	}
	return f, nil
}

// @Summary     List recipes
// @Description 分頁列出食譜，最新的在前；可依收藏、購物車、作者與標籤篩選
// @Tags        recipes
// @Produce     json
// @Param       page                query    int      false "頁碼"
// @Param       limit               query    int      false "每頁筆數" maximum(100)
// @Param       is_favorited        query    int      false "1 只顯示已收藏"
// @Param       is_in_shopping_cart query    int      false "1 只顯示購物車內"
// @Param       author              query    int      false "作者 ID"
// @Param       tags                query    []string false "標籤 slug，可重複" collectionFormat(multi)
// @Success     200                 {object} api.Page[api.RecipeResponse]
// @Failure     400                 {object} api.ErrorResponse
// @Failure     404                 {object} api.ErrorResponse "invalid page"
// @Failure     500                 {object} api.ErrorResponse
// @Router      /recipes [get]
func ListRecipesHandler(db database.DB, storage media.Storage, pageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := api.ParsePagination(c, pageSize)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		f, bad := parseFilter(c)
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		// Anonymous callers have no favourites or cart.
		if f.ViewerID == 0 && (f.Favorited || f.InShoppingCart) {
			page, err := api.NewPage(c, p, 0, []api.RecipeResponse{})
			if err != nil {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
			}
			return c.JSON(http.StatusOK, page)
		}

		f.Limit, f.Offset = p.Limit, p.Offset()
		found, count, err := listRecipes(c.Request().Context(), db, f)
		if err != nil {
			return api.InternalError(c, err)
		}
		page, err := api.NewPage(c, p, count, api.NewRecipeResponses(found, storage.URL))
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, page)
	}
}

// @Summary     Get a recipe
// @Tags        recipes
// @Produce     json
// @Param       id  path     int true "食譜 ID"
// @Success     200 {object} api.RecipeResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /recipes/{id} [get]
func GetRecipeHandler(db database.DB, storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := recipeID(c)
		if !ok {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		d, err := getRecipeDetail(c.Request().Context(), db, middleware.UserID(c), id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRecipeResponse(*d, storage.URL))
	}
}

// @Summary     Create a recipe
// @Description 建立食譜；image 為 base64 data URI
// @Tags        recipes
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateRecipeRequest true "recipe"
// @Success     201  {object} api.RecipeResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes [post]
func CreateRecipeHandler(db database.DB, storage media.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateRecipeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationResponse(err))
		}

		ctx := c.Request().Context()
		ingredients := ingredientAmounts(req.Ingredients)
		bad, err := checkReferences(c, db, &ingredients, &req.Tags)
		if err != nil {
			return api.InternalError(c, err)
		}
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		img, err := decodeImage(req.Image)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.FieldError("image", err.Error()))
		}
		path, err := storage.Save(img)
		if err != nil {
			return api.InternalError(c, err)
		}

		uid := middleware.UserID(c)
		r := &model.Recipe{
			AuthorID:    uid,
			Name:        req.Name,
			Image:       path,
			Text:        req.Text,
			CookingTime: req.CookingTime,
		}
		if err := createRecipe(ctx, db, r, ingredients, req.Tags); err != nil {
			discardImage(wp, storage, path)
			return writeError(c, err)
		}
		metrics.RecipesCreated.Inc()

		d, err := getRecipeDetail(ctx, db, uid, r.ID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewRecipeResponse(*d, storage.URL))
	}
}

// @Summary     Update a recipe
// @Description 部分更新；提供 ingredients 或 tags 時會整批取代
// @Tags        recipes
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "食譜 ID"
// @Param       body body     api.PatchRecipeRequest true "fields to change"
// @Success     200  {object} api.RecipeResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse "不是作者"
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes/{id} [patch]
func UpdateRecipeHandler(db database.DB, storage media.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, ok, err := ownRecipe(c, db)
		if !ok {
			return err
		}

		var req api.PatchRecipeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationResponse(err))
		}

		u := store.RecipeUpdate{
			Name:        req.Name,
			Text:        req.Text,
			CookingTime: req.CookingTime,
			Tags:        req.Tags,
		}
		if req.Ingredients != nil {
			items := ingredientAmounts(*req.Ingredients)
			u.Ingredients = &items
		}
		bad, err := checkReferences(c, db, u.Ingredients, u.Tags)
		if err != nil {
			return api.InternalError(c, err)
		}
		if bad != nil {
			return c.JSON(http.StatusBadRequest, bad)
		}

		if req.Image != nil {
			img, err := decodeImage(*req.Image)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.FieldError("image", err.Error()))
			}
			path, err := storage.Save(img)
			if err != nil {
				return api.InternalError(c, err)
			}
			u.Image = &path
		}

		ctx := c.Request().Context()
		if err := updateRecipe(ctx, db, recipe.ID, u); err != nil {
			if u.Image != nil {
				discardImage(wp, storage, *u.Image)
			}
			if errors.Is(err, store.ErrNotFound) && store.ConstraintName(err) == "" {
				return c.JSON(http.StatusNotFound, errRecipeNotFound)
			}
			return writeError(c, err)
		}
		if u.Image != nil {
			discardImage(wp, storage, recipe.Image)
		}

		d, err := getRecipeDetail(ctx, db, recipe.AuthorID, recipe.ID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewRecipeResponse(*d, storage.URL))
	}
}

// @Summary     Delete a recipe
// @Tags        recipes
// @Param       id  path int true "食譜 ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse "不是作者"
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /recipes/{id} [delete]
func DeleteRecipeHandler(db database.DB, storage media.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, ok, err := ownRecipe(c, db)
		if !ok {
			return err
		}
		image, err := deleteRecipe(c.Request().Context(), db, recipe.ID)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errRecipeNotFound)
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		discardImage(wp, storage, image)
		return c.NoContent(http.StatusNoContent)
	}
}

// ownRecipe 載入 :id 食譜並確認呼叫者是作者，失敗時已寫出回應
func ownRecipe(c echo.Context, db database.DB) (*model.Recipe, bool, error) {
	id, ok := recipeID(c)
	if !ok {
		return nil, false, c.JSON(http.StatusNotFound, errRecipeNotFound)
	}
	recipe, err := getRecipe(c.Request().Context(), db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, c.JSON(http.StatusNotFound, errRecipeNotFound)
	}
	if err != nil {
		return nil, false, api.InternalError(c, err)
	}
	if recipe.AuthorID != middleware.UserID(c) {
		return nil, false, c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "only the author can change this recipe"})
	}
	return recipe, true, nil
}

func ingredientAmounts(in []api.IngredientAmountRequest) []model.IngredientAmount {
	out := make([]model.IngredientAmount, len(in))
	for i, it := range in {
		out[i] = model.IngredientAmount{IngredientID: it.ID, Amount: it.Amount}
	}
	return out
}

// checkReferences 回報不存在的食材與標籤 ID，nil 指標略過
func checkReferences(c echo.Context, db database.DB, ingredients *[]model.IngredientAmount, tags *[]int) (*api.ErrorResponse, error) {
	ctx := c.Request().Context()
	errs := map[string][]string{}

	if ingredients != nil {
		ids := make([]int, len(*ingredients))
		for i, it := range *ingredients {
			ids[i] = it.IngredientID
		}
		missing, err := missingIngredientIDs(ctx, db, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			errs["ingredients"] = append(errs["ingredients"], fmt.Sprintf("ingredient %d does not exist", id))
		}
	}
	if tags != nil {
		missing, err := missingTagIDs(ctx, db, *tags)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			errs["tags"] = append(errs["tags"], fmt.Sprintf("tag %d does not exist", id))
		}
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return &api.ErrorResponse{Message: "validation failed", Errors: errs}, nil
}

// writeError 依違反的外鍵回應；ingredient 或 tag 在檢查後被刪除時回 400，
// 作者帳號已不存在時回 401
func writeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		switch store.ConstraintName(err) {
		case store.FKRecipeIngredient:
			return c.JSON(http.StatusBadRequest, api.FieldError("ingredients", "A referenced ingredient no longer exists."))
		case store.FKRecipeTag:
			return c.JSON(http.StatusBadRequest, api.FieldError("tags", "A referenced tag no longer exists."))
		case store.FKRecipeAuthor:
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "user no longer exists"})
		}
	}
	return api.InternalError(c, err)
}

// discardImage 在背景刪除已儲存的圖片，失敗只記錄 log，孤兒檔案不影響回應
func discardImage(wp worker.Pool, storage media.Storage, path string) {
	if path == "" {
		return
	}
	err := wp.Submit(func() {
		if err := storage.Remove(path); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("remove image")
		}
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("queue image removal")
	}
}
