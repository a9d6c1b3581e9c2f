package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var validationMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must be at least %s characters long",
	"max":      "%s must be no longer than %s characters",
	"url":      "%s must be a valid URL",
	"notblank": "%s must not be blank",
}

func init() {
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

// ValidateStruct validates s and returns JSON field names mapped to friendly messages.
// An empty map means s is valid. s must be a pointer to a struct.
func ValidateStruct(s any) map[string]string {
	fields := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return fields
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["_"] = err.Error()
		return fields
	}

	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	for _, e := range validationErrs {
		name := e.StructField()
		if field, ok := structType.FieldByName(e.StructField()); ok {
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
				name = tag
			}
		}
		fields[name] = validationMessage(name, e)
	}
	return fields
}

func validationMessage(name string, e validator.FieldError) string {
	msg, ok := validationMessages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", name)
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, name, e.Param())
	}
	return fmt.Sprintf(msg, name)
}
