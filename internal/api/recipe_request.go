package api

// IngredientAmountRequest 是寫入食譜時的一行食材
type IngredientAmountRequest struct {
	ID     int `json:"id" validate:"required,min=1,max=2147483647" example:"1"`
	Amount int `json:"amount" validate:"required,min=1,max=32767" example:"200"`
}

// CreateRecipeRequest 定義 POST /recipes 的請求格式；Image 為 base64 data URI，
// 例如 "data:image/png;base64,iVBORw0..."
// swagger:model api.CreateRecipeRequest
type CreateRecipeRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []int                     `json:"tags" validate:"required,min=1,unique,dive,min=1,max=2147483647" example:"1,2"`
	Image       string                    `json:"image" validate:"required" example:"data:image/png;base64,iVBORw0KGgo="`
	Name        string                    `json:"name" validate:"required,max=200" example:"Pancakes"`
	Text        string                    `json:"text" validate:"required" example:"Mix and fry."`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32767" example:"15"`
}

// PatchRecipeRequest 定義 PATCH /recipes/{id} 的請求格式，未提供的欄位維持原值
// swagger:model api.PatchRecipeRequest
type PatchRecipeRequest struct {
	Ingredients *[]IngredientAmountRequest `json:"ingredients" validate:"omitnil,min=1,unique=ID,dive"`
	Tags        *[]int                     `json:"tags" validate:"omitnil,min=1,unique,dive,min=1,max=2147483647"`
	Image       *string                    `json:"image" validate:"omitnil,min=1"`
	Name        *string                    `json:"name" validate:"omitnil,min=1,max=200"`
	Text        *string                    `json:"text" validate:"omitnil,min=1"`
	CookingTime *int                       `json:"cooking_time" validate:"omitnil,min=1,max=32767"`
}
