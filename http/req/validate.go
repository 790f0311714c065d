package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/trailhead"
)

type validator struct {
	v *v10.Validate
}

// newValidator constructs a validator naming fields by their json, then schema, struct tag
// and checking trailhead.Enumerable fields tagged "enum".
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("enum", validEnum)
	v.RegisterTagNameFunc(fieldName)

	return validator{v}
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks structPtr against its "validate" struct tags,
// collecting each broken rule into FieldErrors.
func (v validator) validate(structPtr any) error {
	err := v.v.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fe := make(FieldErrors, 0, len(errs))
	for _, e := range errs {
		// The namespace leads with the struct's own name.
		_, field, ok := strings.Cut(e.Namespace(), ".")
		if !ok {
			field = e.Field()
		}

		rule := e.Tag()
		if e.Param() != "" {
			rule += "=" + e.Param()
		}

		fe = append(fe, FieldError{Field: field, Value: e.Value(), Rule: rule})
	}

	return fe
}

// validEnum reports whether the field, or each element of a slice field, is a valid trailhead.Enumerable.
// An empty slice is not valid.
func validEnum(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return isValidEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := range field.Len() {
		if !isValidEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func isValidEnum(val reflect.Value) bool {
	enum, ok := val.Interface().(trailhead.Enumerable)
	return ok && enum.Valid() == nil
}
