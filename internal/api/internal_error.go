package api

import (
	"net/http"

	"foodgram/internal/logging"

	"github.com/labstack/echo/v4"
)

// InternalError 記錄 err 並回應 500，不把細節洩漏給用戶端
func InternalError(c echo.Context, err error) error {
	logging.Error().Err(err).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Msg("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}
