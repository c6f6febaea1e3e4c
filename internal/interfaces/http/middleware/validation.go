package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the binding validator to report JSON tag names
// in validation errors, so clients see "orderId" rather than "OrderID".
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// IsValidationError reports whether err comes from request validation rather
// than JSON decoding.
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}
