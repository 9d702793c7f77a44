package middleware

import (
	"context"
	"net/http"
	"strings"

	"foodgram/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 由 *service.TokenService 實作
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*service.Claims, error)
}

var errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided")

// extractClaims 接受 "Token <jwt>" 與 "Bearer <jwt>"
func extractClaims(c echo.Context, v TokenVerifier) (*service.Claims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, errMissingToken
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || token == "" || !(strings.EqualFold(scheme, "token") || strings.EqualFold(scheme, "bearer")) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := v.Verify(c.Request().Context(), strings.TrimSpace(token))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
	}
	return claims, nil
}

// RequireAuth 拒絕沒有有效 token 的請求
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth 放行匿名請求，但帶了無效 token 仍會拒絕
func OptionalAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// Claims 回傳已驗證的呼叫者，匿名時為 nil
func Claims(c echo.Context) *service.Claims {
	claims, _ := c.Get(ContextUserKey).(*service.Claims)
	return claims
}

// UserID 回傳呼叫者的 ID，匿名時為 0
func UserID(c echo.Context) int {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
