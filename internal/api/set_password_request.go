package api

// swagger:model api.SetPasswordRequest
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"OldSecret123!"`
	NewPassword     string `json:"new_password" validate:"required,max=150" example:"NewSecret456!"`
}
