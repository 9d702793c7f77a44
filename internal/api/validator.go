package api

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	hexColorRe = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ValidationError 以 JSON 路徑 (例如 "ingredients[1].amount") 為鍵保存各欄位錯誤
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator 把 go-playground/validator 接到 echo.Echo.Validator
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", matches(slugRe))
	_ = v.RegisterValidation("hex_color", matches(hexColorRe))
	_ = v.RegisterValidation("username", matches(usernameRe))
	return &Validator{v: v}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Validate 在違反規則時回傳 *ValidationError，其他錯誤 (例如 nil 或非 struct) 原樣回傳
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: map[string][]string{}}
	for _, fe := range verrs {
		path := fe.Namespace()
		// drop the struct name prefix
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		out.Fields[path] = append(out.Fields[path], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	numeric := fe.Kind() >= reflect.Int && fe.Kind() <= reflect.Float64
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		switch {
		case collection:
			return fmt.Sprintf("Ensure this list has at least %s item(s).", fe.Param())
		case numeric:
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s character(s).", fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "unique":
		return "Items must not repeat."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "hex_color":
		return "Enter a valid HEX color such as #49B64E."
	case "username":
		return "Enter a valid username. It may contain only letters, numbers and @/./+/-/_ characters."
	case "ne":
		return fmt.Sprintf("The value %q is not allowed.", fe.Param())
	default:
		return "Invalid value."
	}
}

// ValidationResponse 把 Validate 的錯誤轉成回應內容
func ValidationResponse(err error) ErrorResponse {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return ErrorResponse{Message: "validation failed", Errors: verr.Fields}
	}
	return ErrorResponse{Message: err.Error()}
}
