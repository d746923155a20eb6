package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields under their form names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors validation messages keyed by form field
type FieldErrors map[string]string

// Error implements error so a FieldErrors can travel through error returns.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, field := range []string{"title", "author", "genre", "synopsis", "picture"} {
		if msg, ok := fe[field]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// CreateForm fields of the create view. Every field is mandatory and the
// picture has to be a well-formed URL.
type CreateForm struct {
	Title    string `form:"title" validate:"required"`
	Author   string `form:"author" validate:"required"`
	Genre    string `form:"genre" validate:"required"`
	Synopsis string `form:"synopsis" validate:"required"`
	Picture  string `form:"picture" validate:"required,url"`
}

// Validate returns nil when the form may be submitted.
func (f CreateForm) Validate() FieldErrors {
	return check(f)
}

// Draft converts the form into a create payload.
func (f CreateForm) Draft() Draft {
	return Draft(f)
}

// EditForm fields of the edit view. Only title, author and genre are
// required; synopsis and picture are free text, the picture is not checked
// for URL shape the way CreateForm does.
type EditForm struct {
	Title    string `form:"title" validate:"required"`
	Author   string `form:"author" validate:"required"`
	Genre    string `form:"genre" validate:"required"`
	Synopsis string `form:"synopsis"`
	Picture  string `form:"picture"`
}

// NewEditForm pre-populates an edit form from a fetched movie.
func NewEditForm(m Movie) EditForm {
	return EditForm(m.Draft())
}

// Validate returns nil when the form may be submitted.
func (f EditForm) Validate() FieldErrors {
	return check(f)
}

// Draft converts the form into an update payload.
func (f EditForm) Draft() Draft {
	return Draft(f)
}

func check(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		fe[e.Field()] = message(e)
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field", e.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
