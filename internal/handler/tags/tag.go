// File: internal/handler/tags/tag.go
package tags

import (
	"errors"
	"net/http"

	"foodgram/internal/api"
	"foodgram/internal/database"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTags = store.ListTags
	getTag   = store.GetTag
)

// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200 {array}  api.TagResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /tags [get]
func ListTagsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := listTags(c.Request().Context(), db)
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewTagResponses(tags))
	}
}

// @Summary     Get a tag
// @Tags        tags
// @Produce     json
// @Param       id  path     int true "標籤 ID"
// @Success     200 {object} api.TagResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /tags/{id} [get]
func GetTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := api.ParseID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
		}
		tag, err := getTag(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
		}
		if err != nil {
			return api.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewTagResponse(*tag))
	}
}
