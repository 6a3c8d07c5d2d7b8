// Package validation decodes JSON request bodies and validates them with
// go-playground/validator, reporting every offending field by its JSON path.
package validation

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"dailydiet/internal/errors"
)

// Accepted ISO-8601 layouts, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// New returns a validator that names fields after their json tags and knows
// the iso8601 tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseTime(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseTime parses an ISO-8601 timestamp. Values without an offset are UTC.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// Bind decodes the request body into dst, a pointer to a struct of pointer
// fields, and validates it. A key absent from the body leaves its field nil;
// a key present with null or a value of the wrong type is reported as a field
// error. All problems are returned together as an *errors.ValidationError.
func Bind(c echo.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}

	typeErrs, err := Decode(body, dst)
	if err != nil {
		return err
	}

	ruleErrs := map[string]string{}
	if err := c.Validate(dst); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return fmt.Errorf("validate request: %w", err)
		}
		for _, fe := range verrs {
			ruleErrs[fe.Field()] = message(fe)
		}
	}

	var fields []errors.FieldError
	for _, name := range fieldNames(dst) {
		if msg, ok := typeErrs[name]; ok {
			fields = append(fields, errors.FieldError{Field: name, Message: msg})
		} else if msg, ok := ruleErrs[name]; ok {
			fields = append(fields, errors.FieldError{Field: name, Message: msg})
		}
	}
	if len(fields) > 0 {
		return errors.NewValidationError(fields...)
	}
	return nil
}

// Decode fills the pointer fields of dst from the JSON object in body, one key
// at a time, and returns per-field type errors keyed by JSON name. Unknown keys
// are ignored. A body that is not a JSON object is a validation error.
func Decode(body []byte, dst interface{}) (map[string]string, error) {
	raw := map[string]json.RawMessage{}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &raw); err != nil || raw == nil {
			return nil, errors.NewValidationError(errors.FieldError{Field: "", Message: objectMessage(trimmed)})
		}
	}

	typeErrs := map[string]string{}
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		value, ok := raw[name]
		if name == "" || !ok {
			continue
		}
		if sf.Type.Kind() != reflect.Ptr {
			continue
		}
		elemType := sf.Type.Elem()
		if string(bytes.TrimSpace(value)) == "null" {
			typeErrs[name] = fmt.Sprintf("Expected %s, received null", kindName(elemType.Kind()))
			continue
		}
		target := reflect.New(elemType)
		if err := json.Unmarshal(value, target.Interface()); err != nil {
			typeErrs[name] = fmt.Sprintf("Expected %s, received %s", kindName(elemType.Kind()), receivedName(value))
			continue
		}
		rv.Field(i).Set(target)
	}
	return typeErrs, nil
}

func fieldNames(dst interface{}) []string {
	rt := reflect.TypeOf(dst).Elem()
	names := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name := jsonName(rt.Field(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "iso8601":
		return "Invalid date"
	default:
		return "Invalid value"
	}
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	default:
		return "object"
	}
}

func receivedName(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return "undefined"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func objectMessage(body []byte) string {
	if !json.Valid(body) {
		return "Malformed JSON"
	}
	return "Expected object, received " + receivedName(body)
}
