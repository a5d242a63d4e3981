package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

type describe func(field, param string) string

func bound(word string) describe {
	return func(field, param string) string {
		return fmt.Sprintf("%s must be %s %s", field, word, param)
	}
}

func fixed(text string) describe {
	return func(field, _ string) string {
		return field + " " + text
	}
}

var describers = map[string]describe{
	"required":    fixed("is required"),
	"gte":         bound("greater than or equal to"),
	"min":         bound("greater than or equal to"),
	"lte":         bound("less than or equal to"),
	"max":         bound("less than or equal to"),
	"oneof":       bound("one of"),
	"email":       fixed("must be a valid email address"),
	"notblank":    fixed("must not be blank"),
	"bookingdate": fixed("must be a date in YYYY-MM-DD format"),
}

// jsonName reports fields by their wire name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// message describes the first failed rule it knows about.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrs {
		if fn, ok := describers[fieldErr.Tag()]; ok {
			return fn(fieldErr.Field(), fieldErr.Param())
		}
	}

	return fieldErrs.Error()
}
