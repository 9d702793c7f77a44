package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestNewRecipeResponse(t *testing.T) {
	url := func(p string) string { return "/media/" + p }
	d := model.RecipeDetail{
		Recipe: model.Recipe{ID: 3, AuthorID: 1, Name: "Soup", Image: "recipes/images/a.png", Text: "t", CookingTime: 5},
		Author: model.Author{User: model.User{ID: 1, Email: "a@b.c", Username: "alice"}, IsSubscribed: true},
		Tags:   []model.Tag{{ID: 1, Name: "Lunch", Color: "#fff", Slug: "lunch"}},
		Ingredients: []model.RecipeIngredient{
			{Ingredient: model.Ingredient{ID: 2, Name: "salt", MeasurementUnit: "g"}, Amount: 5},
		},
		IsFavorited: true,
	}

	resp := NewRecipeResponse(d, url)
	require.Equal(t, "/media/recipes/images/a.png", resp.Image)
	require.True(t, resp.Author.IsSubscribed)
	require.Equal(t, []RecipeIngredientResponse{{ID: 2, Name: "salt", MeasurementUnit: "g", Amount: 5}}, resp.Ingredients)
	require.Equal(t, "lunch", resp.Tags[0].Slug)
	require.True(t, resp.IsFavorited)
	require.False(t, resp.IsInShoppingCart)

	short := NewRecipeShortResponse(d.Recipe, url)
	require.Equal(t, RecipeShortResponse{ID: 3, Name: "Soup", Image: "/media/recipes/images/a.png", CookingTime: 5}, short)

	sub := NewSubscriptionResponse(model.Subscription{
		Author:       d.Author,
		Recipes:      []model.RecipeShort{{ID: 3, Name: "Soup", Image: "x.png", CookingTime: 5}},
		RecipesCount: 7,
	}, url)
	require.Equal(t, "alice", sub.Username)
	require.Equal(t, 7, sub.RecipesCount)
	require.Equal(t, "/media/x.png", sub.Recipes[0].Image)
}

func TestJSONSerializer(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = JSONSerializer{}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.JSON(http.StatusOK, ErrorResponse{Message: "nope"}))
	require.JSONEq(t, `{"message":"nope"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","password":"p"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	var login LoginRequest
	require.NoError(t, c.Bind(&login))
	require.Equal(t, "a@b.c", login.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"cooking_time":"soon"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	var recipe CreateRecipeRequest
	err := c.Bind(&recipe)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
