package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/user/bloglist-go/apperror"
	"github.com/user/bloglist-go/model"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves every backend.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their API name, falling back to the column name for
	// fields hidden from JSON.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = fld.Tag.Get("db")
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidateBlog checks a blog against the persistence schema.
func ValidateBlog(b *model.Blog) error {
	return check("blog", b)
}

// ValidateUser checks a user against the persistence schema.
func ValidateUser(u *model.User) error {
	return check("user", u)
}

// UniqueViolation builds the error reported when a unique field collides.
func UniqueViolation(entity, field string, cause error) error {
	return apperror.NewValidationError(
		fmt.Sprintf("%s validation failed: %s: expected `%s` to be unique", entity, field, field),
		cause,
	)
}

func check(entity string, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("schema validation could not run", err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return apperror.NewValidationError(
		fmt.Sprintf("%s validation failed: %s", entity, strings.Join(parts, ", ")),
		err,
	)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("path `%s` is required", fe.Field())
	case "min":
		return fmt.Sprintf("path `%s` (`%v`) is shorter than the minimum allowed length (%s)", fe.Field(), fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("path `%s` (%v) is less than minimum allowed value (%s)", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("path `%s` failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}
