package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=100" example:"alice@example.com"`
	Username  string `json:"username" validate:"required,max=150,username,ne=me" example:"alice"`
	FirstName string `json:"first_name" validate:"required,max=50" example:"Alice"`
	LastName  string `json:"last_name" validate:"required,max=50" example:"Smith"`
	Password  string `json:"password" validate:"required,max=150" example:"Secret123!"`
}
