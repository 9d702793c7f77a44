// File: internal/handler/users/subscription.go
package users

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/media"
	"foodgram/internal/middleware"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listSubscriptions = store.ListSubscriptions
	getSubscription   = store.GetSubscription
	follow            = store.Follow
	unfollow          = store.Unfollow
)

// recipesLimit 讀取 ?recipes_limit=，限制每位作者附帶的食譜數，須為非負整數
func recipesLimit(c echo.Context) (int, error) {
	v := c.QueryParam("recipes_limit")
	if v == "" {
		return store.NoRecipesLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("recipes_limit must be a non-negative integer")
	}
	return n, nil
}

// target 將 :id 解析為呼叫者以外的既有使用者，失敗時已寫出回應
func target(c echo.Context, db database.DB) (int, bool, error) {
	id, ok := api.ParseID(c.Param("id"))
	if !ok {
		return 0, false, c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
	}
	if _, err := getUserByID(c.Request().Context(), db, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, false, c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		return 0, false, api.InternalError(c, err)
	}
	if id == middleware.UserID(c) {
		return 0, false, c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "you cannot subscribe to yourself"})
	}
	return id, true, nil
}

// @Summary     List my subscriptions
// @Description 分頁列出目前使用者追蹤的作者及其食譜
// @Tags        users
// @Produce     json
// @Param       page          query    int false "頁碼"
// @Param       limit         query    int false "每頁筆數" maximum(100)
// @Param       recipes_limit query    int false "每位作者最多顯示幾篇食譜"
// @Success     200           {object} api.Page[api.SubscriptionResponse]
// @Failure     400           {object} api.ErrorResponse
// @Failure     401           {object} api.ErrorResponse
// @Failure     404           {object} api.ErrorResponse "invalid page"
// @Security    TokenAuth
// @Router      /users/subscriptions [get]
func ListSubscriptionsHandler(db database.DB, storage media.Storage, pageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := api.ParsePagination(c, pageSize)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		limit, err := recipesLimit(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.FieldError("recipes_limit", err.Error()))
		}
		subs, count, err := listSubscriptions(c.Request().Context(), db, middleware.UserID(c), limit, p.Limit, p.Offset())
		if err != nil {
			return api.InternalError(c, err)
		}
		page, err := api.NewPage(c, p, count, api.NewSubscriptionResponses(subs, storage.URL))
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, page)
	}
}

// @Summary     Subscribe to an author
// @Tags        users
// @Produce     json
// @Param       id            path     int true  "作者 ID"
// @Param       recipes_limit query    int false "每位作者最多顯示幾篇食譜"
// @Success     201           {object} api.SubscriptionResponse
// @Failure     400           {object} api.ErrorResponse "自己或重複追蹤"
// @Failure     401           {object} api.ErrorResponse
// @Failure     404           {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /users/{id}/subscribe [post]
func SubscribeHandler(db database.DB, storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorID, ok, err := target(c, db)
		if !ok {
			return err
		}
		limit, err := recipesLimit(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.FieldError("recipes_limit", err.Error()))
		}

		uid := middleware.UserID(c)
		err = follow(c.Request().Context(), db, uid, authorID)
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "already subscribed"})
		case errors.Is(err, store.ErrInvalid):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "you cannot subscribe to yourself"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case err != nil:
			return api.InternalError(c, err)
		}

		sub, err := getSubscription(c.Request().Context(), db, uid, authorID, limit)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewSubscriptionResponse(*sub, storage.URL))
	}
}

// @Summary     Unsubscribe from an author
// @Tags        users
// @Param       id  path int true "作者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "使用者不存在或尚未追蹤"
// @Security    TokenAuth
// @Router      /users/{id}/subscribe [delete]
func UnsubscribeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorID, ok, err := target(c, db)
		if !ok {
			return err
		}
		err = unfollow(c.Request().Context(), db, middleware.UserID(c), authorID)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "not subscribed"})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
