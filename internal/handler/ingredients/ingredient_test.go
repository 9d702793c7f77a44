package ingredients

import (
	"context"
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
	listIngredients = store.ListIngredients
	getIngredient = store.GetIngredient
}

func TestListIngredientsHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	var got string
	listIngredients = func(_ context.Context, _ database.Querier, prefix string) ([]model.Ingredient, error) {
		got = prefix
		return []model.Ingredient{{ID: 4, Name: "sugar", MeasurementUnit: "g"}}, nil
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/ingredients?name=Su", nil), rec)
	require.NoError(t, ListIngredientsHandler(nil)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Su", got)
	require.JSONEq(t, `[{"id":4,"name":"sugar","measurement_unit":"g"}]`, rec.Body.String())
}

func TestGetIngredientHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)
	getIngredient = func(context.Context, database.Querier, int) (*model.Ingredient, error) {
		return nil, store.ErrNotFound
	}

	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("4")
	require.NoError(t, GetIngredientHandler(nil)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetIngredientHandlerOutOfRange(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)
	getIngredient = func(context.Context, database.Querier, int) (*model.Ingredient, error) {
		t.Fatal("store must not be queried")
		return nil, nil
	}

	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("99999999999")
	require.NoError(t, GetIngredientHandler(nil)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
