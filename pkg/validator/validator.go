package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	setupOnce sync.Once
	instance  *validator.Validate
)

// ValidationError describes one field that failed a rule. Field carries the
// JSON name of the struct field, Tag the rule that rejected it.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// ValidationErrors is the full set of failures for one payload.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(v))
	for _, failure := range v {
		msg := fmt.Sprintf("%s failed on %s", failure.Field, failure.Tag)
		if failure.Param != "" {
			msg += "=" + failure.Param
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// ValidateStruct runs every registered rule against the struct and collapses
// the library failures into ValidationErrors keyed by JSON field names.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var libErrs validator.ValidationErrors
	if !errors.As(err, &libErrs) {
		return err
	}

	failures := make(ValidationErrors, 0, len(libErrs))
	for _, fe := range libErrs {
		failures = append(failures, ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return failures
}

// RegisterValidation adds a custom rule under the given tag. Domain packages
// use this to teach the validator their enum and policy checks.
func RegisterValidation(tag string, fn validator.Func) error {
	return getValidator().RegisterValidation(tag, fn)
}

func getValidator() *validator.Validate {
	setupOnce.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(jsonFieldName)
	})
	return instance
}

// jsonFieldName resolves the name reported for a failed field to its JSON tag
// so error messages match the wire payload rather than Go identifiers.
func jsonFieldName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" || tag == "-" {
		return fld.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}
