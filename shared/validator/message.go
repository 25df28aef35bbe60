package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"len":         "{field} must have length {param}",
	"email":       "{field} must be a valid email address",
	"url":         "{field} must be a valid url",
	"uppercase":   "{field} must be uppercase",
	"datetime":    "{field} must be a date in the format {param}",
	"nefield":     "{field} must differ from {param}",
	"excludesall": "{field} must not contain any of {param}",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
	"slug":        "{field} may only contain lowercase letters, digits, - and _",
}

// message renders the first failed rule that has a template; the raw validator text otherwise.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
