// Package validation wraps go-playground/validator behind a process-wide
// instance with human-readable field messages. The validator caches struct
// metadata, so sharing one instance is both safe and cheaper than building
// one per call.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates s against its `validate` tags. On failure it returns a
// single error listing every failed field in readable form.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, len(fieldErrs))
	for i, fieldErr := range fieldErrs {
		messages[i] = translate(fieldErr)
	}
	return errors.New(strings.Join(messages, "; "))
}

func translate(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", field, fieldErr.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
}
