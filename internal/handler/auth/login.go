// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
)

// TokenIssuer 為使用者簽發 token
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

// TokenRevoker 讓已驗證的 token 失效
type TokenRevoker interface {
	Revoke(ctx context.Context, claims *service.Claims) error
}

const badCredentials = "unable to log in with provided credentials"

// LoginHandler 使用 Email/Password 驗證並回傳 auth token
// @Summary     Obtain an auth token
// @Description 使用 Email 與 Password 進行驗證，回傳 auth_token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "credentials"
// @Success     200  {object} api.TokenResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/token/login [post]
func LoginHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ValidationResponse(err))
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: badCredentials})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		if err := authenticateUser(*user, req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: badCredentials})
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.TokenResponse{AuthToken: token})
	}
}

// LogoutHandler 撤銷目前的 token
// @Summary     Revoke the current auth token
// @Tags        auth
// @Success     204
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    TokenAuth
// @Router      /auth/token/logout [post]
func LogoutHandler(tokens TokenRevoker) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.Claims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication credentials were not provided"})
		}
		if err := tokens.Revoke(c.Request().Context(), claims); err != nil {
			return api.InternalError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
