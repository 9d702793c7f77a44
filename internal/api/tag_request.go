package api

// TagRequest 定義從命令列建立標籤的參數
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hex_color"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}
