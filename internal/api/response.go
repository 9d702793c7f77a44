package api

// swagger:model api.UserResponse
type UserResponse struct {
	Email        string `json:"email" example:"alice@example.com"`
	ID           int    `json:"id" example:"1"`
	Username     string `json:"username" example:"alice"`
	FirstName    string `json:"first_name" example:"Alice"`
	LastName     string `json:"last_name" example:"Smith"`
	IsSubscribed bool   `json:"is_subscribed" example:"false"`
}

// CreatedUserResponse 是註冊成功的回應，不含 is_subscribed
// swagger:model api.CreatedUserResponse
type CreatedUserResponse struct {
	Email     string `json:"email" example:"alice@example.com"`
	ID        int    `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Smith"`
}

// swagger:model api.TagResponse
type TagResponse struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Breakfast"`
	Color string `json:"color" example:"#E26C2D"`
	Slug  string `json:"slug" example:"breakfast"`
}

// swagger:model api.IngredientResponse
type IngredientResponse struct {
	ID              int    `json:"id" example:"1"`
	Name            string `json:"name" example:"sugar"`
	MeasurementUnit string `json:"measurement_unit" example:"g"`
}

// swagger:model api.RecipeIngredientResponse
type RecipeIngredientResponse struct {
	ID              int    `json:"id" example:"1"`
	Name            string `json:"name" example:"sugar"`
	MeasurementUnit string `json:"measurement_unit" example:"g"`
	Amount          int    `json:"amount" example:"200"`
}

// swagger:model api.RecipeResponse
type RecipeResponse struct {
	ID               int                        `json:"id" example:"1"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited" example:"false"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart" example:"false"`
	Name             string                     `json:"name" example:"Pancakes"`
	Image            string                     `json:"image" example:"http://localhost:8080/media/recipes/images/3f1c.png"`
	Text             string                     `json:"text" example:"Mix and fry."`
	CookingTime      int                        `json:"cooking_time" example:"15"`
}

// swagger:model api.RecipeShortResponse
type RecipeShortResponse struct {
	ID          int    `json:"id" example:"1"`
	Name        string `json:"name" example:"Pancakes"`
	Image       string `json:"image" example:"http://localhost:8080/media/recipes/images/3f1c.png"`
	CookingTime int    `json:"cooking_time" example:"15"`
}

// swagger:model api.SubscriptionResponse
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int                   `json:"recipes_count" example:"3"`
}
