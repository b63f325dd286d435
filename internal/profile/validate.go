package profile

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all section checks. Field names in errors come
// from the json tag so callers see the wire name, not the Go name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError identifies the section and item index of a malformed
// payload entry. Index is -1 for the profile section, which is not a list.
type ValidationError struct {
	Section string
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation error in %s[%d]: %s %s", e.Section, e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s: %s %s", e.Section, e.Field, e.Message)
}

// Normalizer is implemented by every payload type that canonicalizes its
// fields before validation.
type Normalizer interface {
	Normalize()
}

// ValidateSection normalizes and validates every item of a child-collection
// payload. The first failing item aborts with a ValidationError carrying
// the section name and item index; callers treat that as "nothing from
// this payload may be written".
func ValidateSection[T any, PT interface {
	*T
	Normalizer
}](section string, items []T) error {
	for i := range items {
		PT(&items[i]).Normalize()
		if err := validate.Struct(&items[i]); err != nil {
			return sectionError(section, i, err)
		}
	}
	return nil
}

// ValidateStruct validates any tagged payload struct that is not one of
// the child collections. section names the payload in the error.
func ValidateStruct(section string, v any) error {
	if err := validate.Struct(v); err != nil {
		return sectionError(section, -1, err)
	}
	return nil
}

// ValidateProfileUpdate normalizes and validates a partial profile update.
func ValidateProfileUpdate(update *ProfileUpdate) error {
	update.Normalize()
	if err := validate.Struct(update); err != nil {
		return sectionError(SectionProfile, -1, err)
	}
	return nil
}

// sectionError converts the first validator failure into a ValidationError.
func sectionError(section string, index int, err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Section: section,
			Index:   index,
			Field:   fe.Field(),
			Message: tagMessage(fe),
		}
	}
	return &ValidationError{Section: section, Index: index, Message: err.Error()}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
