package tags

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/model"
	"foodgram/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	listTags = store.ListTags
	getTag = store.GetTag
}

func TestListTagsHandler(t *testing.T) {
	e := echo.New()

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		listTags = func(context.Context, database.Querier) ([]model.Tag, error) {
			return []model.Tag{{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}}, nil
		}
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tags", nil), rec)
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[{"id":1,"name":"Breakfast","color":"#E26C2D","slug":"breakfast"}]`, rec.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		listTags = func(context.Context, database.Querier) ([]model.Tag, error) { return nil, errors.New("down") }
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tags", nil), rec)
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetTagHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)
	getTag = func(_ context.Context, _ database.Querier, id int) (*model.Tag, error) {
		if id != 1 {
			return nil, store.ErrNotFound
		}
		return &model.Tag{ID: 1, Slug: "breakfast"}, nil
	}

	for _, tc := range []struct {
		id   string
		code int
	}{
		{"1", http.StatusOK},
		{"2", http.StatusNotFound},
		{"x", http.StatusNotFound},
		{"99999999999", http.StatusNotFound},
	} {
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ctx.SetParamNames("id")
		ctx.SetParamValues(tc.id)
		require.NoError(t, GetTagHandler(nil)(ctx))
		require.Equal(t, tc.code, rec.Code, tc.id)
	}
}
