package api

import "foodgram/internal/model"

// ImageURL 將儲存路徑轉成用戶端可取用的圖片 URL
type ImageURL func(path string) string

func NewUserResponse(a model.Author) UserResponse {
	return UserResponse{
		Email:        a.Email,
		ID:           a.ID,
		Username:     a.Username,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		IsSubscribed: a.IsSubscribed,
	}
}

func NewCreatedUserResponse(u model.User) CreatedUserResponse {
	return CreatedUserResponse{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func NewTagResponse(t model.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func NewTagResponses(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = NewTagResponse(t)
	}
	return out
}

func NewIngredientResponse(i model.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func NewIngredientResponses(items []model.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, len(items))
	for i, it := range items {
		out[i] = NewIngredientResponse(it)
	}
	return out
}

func NewRecipeResponse(d model.RecipeDetail, url ImageURL) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, len(d.Ingredients))
	for i, ri := range d.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              ri.ID,
			Name:            ri.Name,
			MeasurementUnit: ri.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}
	return RecipeResponse{
		ID:               d.ID,
		Tags:             NewTagResponses(d.Tags),
		Author:           NewUserResponse(d.Author),
		Ingredients:      ingredients,
		IsFavorited:      d.IsFavorited,
		IsInShoppingCart: d.IsInShoppingCart,
		Name:             d.Name,
		Image:            url(d.Image),
		Text:             d.Text,
		CookingTime:      d.CookingTime,
	}
}

func NewRecipeResponses(list []model.RecipeDetail, url ImageURL) []RecipeResponse {
	out := make([]RecipeResponse, len(list))
	for i, d := range list {
		out[i] = NewRecipeResponse(d, url)
	}
	return out
}

func NewRecipeShortResponse(r model.Recipe, url ImageURL) RecipeShortResponse {
	return RecipeShortResponse{ID: r.ID, Name: r.Name, Image: url(r.Image), CookingTime: r.CookingTime}
}

func NewSubscriptionResponse(s model.Subscription, url ImageURL) SubscriptionResponse {
	recipes := make([]RecipeShortResponse, len(s.Recipes))
	for i, r := range s.Recipes {
		recipes[i] = RecipeShortResponse{ID: r.ID, Name: r.Name, Image: url(r.Image), CookingTime: r.CookingTime}
	}
	return SubscriptionResponse{
		UserResponse: NewUserResponse(s.Author),
		Recipes:      recipes,
		RecipesCount: s.RecipesCount,
	}
}

func NewSubscriptionResponses(list []model.Subscription, url ImageURL) []SubscriptionResponse {
	out := make([]SubscriptionResponse, len(list))
	for i, s := range list {
		out[i] = NewSubscriptionResponse(s, url)
	}
	return out
}
