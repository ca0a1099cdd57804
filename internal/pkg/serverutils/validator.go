package serverutils

import (
	"fmt"
	"strings"

	"coachsite-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds the failures into a
// single Validation error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
		return apperrors.Validation(strings.Join(fields, ", "), err)
	}
	return nil
}
