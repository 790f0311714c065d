package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/trailhead"
)

type valuesDecoder struct {
	dec *schema.Decoder
}

func newValuesDecoder() valuesDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return valuesDecoder{dec}
}

// decode fills structPtr from vals.
// Values that cannot be converted to their field's type are FieldErrors.
func (d valuesDecoder) decode(structPtr any, vals url.Values) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", trailhead.ErrBadAny, structPtr)
	}

	err := d.dec.Decode(structPtr, vals)
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	// NOTE(dlk): past the pointer check above, schema wraps every error in a MultiError.
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", trailhead.ErrBadFormat, err)
	}

	var fe FieldErrors
	for _, err := range multi {
		switch err := err.(type) {
		case schema.ConversionError:
			fe = append(fe, FieldError{Field: err.Key, Value: valueAt(vals[err.Key], err.Index), Rule: "type=" + err.Type.String()})

		case schema.UnknownKeyError:
			fe = append(fe, FieldError{Field: err.Key, Value: vals.Get(err.Key), Rule: "unknown"})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: mark %q required with a "validate" tag, not schema`, trailhead.ErrNotImplemented, err.Key)

		default:
			// NOTE(dlk): schema does not report a field without a registered converter
			// until vals sets its key.
			if strings.Contains(err.Error(), "converter not found") {
				return fmt.Errorf("%w: %s", trailhead.ErrNotImplemented, err)
			}

			return fmt.Errorf("%w: %s", trailhead.ErrUnexpected, err)
		}
	}

	return fe
}

// valueAt is vs[i], or vs[0] for the -1 index schema reports for non-slice fields.
func valueAt(vs []string, i int) string {
	i = max(i, 0)
	if i >= len(vs) {
		return ""
	}

	return vs[i]
}
