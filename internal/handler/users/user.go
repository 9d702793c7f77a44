// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/model"
	"foodgram/internal/service"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	getAuthor          = store.GetAuthor
	listUsers          = store.ListUsers
	updateUserPassword = store.UpdateUserPassword
)

// uniqueFields 將 users 的唯一約束對應到其保護的請求欄位
var uniqueFields = map[string]string{
	"users_email_key":    "email",
	"users_username_key": "username",
}

// @Summary     List users
// @Description 分頁列出所有使用者，is_subscribed 依目前登入者計算
// @Tags        users
// @Produce     json
// @Param       page  query    int false "頁碼"
// @Param       limit query    int false "每頁筆數" maximum(100)
// @Success     200   {object} api.Page[api.UserResponse]
// @Failure     404   {object} api.ErrorResponse "invalid page"
// @Failure     500   {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB, pageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := api.ParsePagination(c, pageSize)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		users, count, err := listUsers(c.Request().Context(), db, middleware.UserID(c), p.Limit, p.Offset())
		if err != nil {
			return api.InternalError(c, err)
		}
		results := make([]api.UserResponse, len(users))
		for i, u := range users {
			results[i] = api.NewUserResponse(u)
		}
		page, err := api.NewPage(c, p, count, results)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, page)
	}
}

// @Summary     Register a new user
// @Description 建立新帳號 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "new user"
// @Success     201  {object} api.CreatedUserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationResponse(err))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return api.InternalError(c, err)
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Email:        strings.ToLower(req.Email),
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
		})
		if errors.Is(err, store.ErrDuplicate) {
			field, ok := uniqueFields[store.ConstraintName(err)]
			if !ok {
				field = "email"
			}
			return c.JSON(http.StatusBadRequest, api.FieldError(field, "A user with that "+field+" already exists."))
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewCreatedUserResponse(*user))
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := api.ParseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		user, err := getAuthor(c.Request().Context(), db, middleware.UserID(c), id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Get current user
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := middleware.UserID(c)
		if uid == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		user, err := getAuthor(c.Request().Context(), db, uid, uid)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Change own password
// @Description 驗證目前密碼並更新為新密碼
// @Tags        users
// @Accept      json
// @Param       body body api.SetPasswordRequest true "passwords"
// @Success     204  "No Content"
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /users/set_password [post]
func SetPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := middleware.UserID(c)
		if uid == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.SetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationResponse(err))
		}

		user, err := getUserByID(c.Request().Context(), db, uid)
		if err != nil {
			return api.InternalError(c, err)
		}
		if err := authenticateUser(*user, req.CurrentPassword); err != nil {
			return c.JSON(http.StatusBadRequest, api.FieldError("current_password", "Invalid password."))
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return api.InternalError(c, err)
		}
		if err := updateUserPassword(c.Request().Context(), db, uid, hash); err != nil {
			return api.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
