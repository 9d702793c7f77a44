package api

// ErrorResponse 是所有非 2xx JSON 回應的格式；Errors 只在驗證失敗時出現，
// 以欄位路徑對應錯誤訊息
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string              `json:"message" example:"validation failed"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// FieldError 回傳單一欄位的驗證錯誤
func FieldError(field, msg string) ErrorResponse {
	return ErrorResponse{
		Message: "validation failed",
		Errors:  map[string][]string{field: {msg}},
	}
}
