package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and returns a field→message map, empty when
// the value is valid.
func Validate(v any) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(v); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			errs["request"] = err.Error()
			return errs
		}
		for _, fe := range ves {
			field := strings.ToLower(fe.Field())
			errs[field] = fmt.Sprintf("failed on rule %q", fe.Tag())
		}
	}
	return errs
}
