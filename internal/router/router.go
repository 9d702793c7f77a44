// File: internal/router/router.go
package router

import (
	"foodgram/internal/cache"
	"foodgram/internal/database"
	"foodgram/internal/handler"
	"foodgram/internal/handler/auth"
	"foodgram/internal/handler/ingredients"
	"foodgram/internal/handler/recipes"
	"foodgram/internal/handler/tags"
	"foodgram/internal/handler/users"
	"foodgram/internal/media"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/internal/worker"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Tokens 負責簽發、驗證與撤銷 token
type Tokens interface {
	middleware.TokenVerifier
	auth.TokenIssuer
	auth.TokenRevoker
}

// Deps 是註冊路由所需的依賴
type Deps struct {
	DB        database.DB
	Cache     cache.Cache
	Tokens    Tokens
	Storage   media.Storage
	Workers   worker.Pool
	MediaRoot string
	PageSize  int
}

// Setup 註冊所有路由
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens)
	optionalAuth := middleware.OptionalAuth(d.Tokens)

	e.Static("/media", d.MediaRoot)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 登入與登出
	api.POST("/auth/token/login", auth.LoginHandler(d.DB, d.Tokens))
	api.POST("/auth/token/logout", auth.LogoutHandler(d.Tokens), requireAuth)

	apiUsers := api.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(d.DB, d.PageSize), optionalAuth)
	apiUsers.POST("", users.CreateUserHandler(d.DB))
	apiUsers.GET("/me", users.GetMeHandler(d.DB), requireAuth)
	apiUsers.POST("/set_password", users.SetPasswordHandler(d.DB), requireAuth)
	apiUsers.GET("/subscriptions", users.ListSubscriptionsHandler(d.DB, d.Storage, d.PageSize), requireAuth)
	apiUsers.GET("/:id", users.GetUserHandler(d.DB), optionalAuth)
	apiUsers.POST("/:id/subscribe", users.SubscribeHandler(d.DB, d.Storage), requireAuth)
	apiUsers.DELETE("/:id/subscribe", users.UnsubscribeHandler(d.DB), requireAuth)

	apiRecipes := api.Group("/recipes")
	apiRecipes.GET("", recipes.ListRecipesHandler(d.DB, d.Storage, d.PageSize), optionalAuth)
	apiRecipes.POST("", recipes.CreateRecipeHandler(d.DB, d.Storage, d.Workers), requireAuth)
	apiRecipes.GET("/download_shopping_cart", recipes.DownloadShoppingCartHandler(d.DB), requireAuth)
	apiRecipes.GET("/:id", recipes.GetRecipeHandler(d.DB, d.Storage), optionalAuth)
	apiRecipes.PATCH("/:id", recipes.UpdateRecipeHandler(d.DB, d.Storage, d.Workers), requireAuth)
	apiRecipes.DELETE("/:id", recipes.DeleteRecipeHandler(d.DB, d.Storage, d.Workers), requireAuth)
	apiRecipes.POST("/:id/favorite", recipes.AddFavoriteHandler(d.DB, d.Storage), requireAuth)
	apiRecipes.DELETE("/:id/favorite", recipes.RemoveFavoriteHandler(d.DB), requireAuth)
	apiRecipes.POST("/:id/shopping_cart", recipes.AddToShoppingCartHandler(d.DB, d.Storage), requireAuth)
	apiRecipes.DELETE("/:id/shopping_cart", recipes.RemoveFromShoppingCartHandler(d.DB), requireAuth)

	api.GET("/tags", tags.ListTagsHandler(d.DB))
	api.GET("/tags/:id", tags.GetTagHandler(d.DB))
	api.GET("/ingredients", ingredients.ListIngredientsHandler(d.DB))
	api.GET("/ingredients/:id", ingredients.GetIngredientHandler(d.DB))
}
