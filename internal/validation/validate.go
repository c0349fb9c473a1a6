package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
)

// SectionPricing is accepted in requests but has no template; assembly skips it.
const SectionPricing templates.Section = "pricing"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	knownSections = func() map[templates.Section]bool {
		m := map[templates.Section]bool{SectionPricing: true}
		for _, s := range templates.AllSections() {
			m[s] = true
		}
		return m
	}()
)

// KnownSection reports whether s may appear in a request's section list.
func KnownSection(s templates.Section) bool {
	return knownSections[s]
}

// Validator returns the shared validator with the workbench's custom tags:
// style_level, section and page_type.
func Validator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("style_level", func(fl validator.FieldLevel) bool {
			return stylelevel.Level(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
			return KnownSection(templates.Section(fl.Field().String()))
		})
		_ = v.RegisterValidation("page_type", func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "landing_page"
		})

		validateInst = v
	})
	return validateInst
}

// Struct validates v and converts validator failures into *Error.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &Error{Message: "invalid request", Cause: err}
	}

	out := &Error{Message: "invalid request", Cause: err}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "style_level":
		return fmt.Sprintf("%q is not a style level (full, mid, low)", fe.Value())
	case "section":
		return fmt.Sprintf("%q is not a known section", fe.Value())
	case "page_type":
		return fmt.Sprintf("%q is not a supported page type", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "hexcolor":
		return fmt.Sprintf("%q is not a hex color", fe.Value())
	case "url":
		return "must be a URL"
	}
	return fmt.Sprintf("failed %q constraint", fe.Tag())
}
