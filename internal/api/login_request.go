package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}

// swagger:model api.TokenResponse
type TokenResponse struct {
	AuthToken string `json:"auth_token" example:"eyJhbGciOi..."`
}
