package web

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GetErrorMsg renders the first field error of ve as a user-facing message.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters long", fe.Field(), fe.Param())
	case "numeric":
		return fe.Field() + " must contain only digits"
	case "alphanum":
		return fe.Field() + " must contain only letters and digits"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match the %s format", fe.Field(), fe.Param())
	}

	return fe.Field() + " field is invalid"
}
