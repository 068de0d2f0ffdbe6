// Package payload restricts decoded request bodies to the keys an operation
// accepts.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Mode int

const (
	// All requires every required key (creation).
	All Mode = iota
	// Any requires at least one required key (partial update).
	Any
)

func (m Mode) String() string {
	if m == Any {
		return "any"
	}
	return "all"
}

var ErrMissingKeys = errors.New("missing required keys")

// ValidationError reports which keys the body should have carried.
type ValidationError struct {
	Mode     Mode
	Required []string
	Missing  []string
}

func (e *ValidationError) Error() string {
	sep := ", "
	if e.Mode == Any {
		sep = " or "
	}
	return "Required keys are " + strings.Join(e.Required, sep)
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingKeys
}

// Field is one accepted key and its decoded JSON value.
type Field struct {
	Name  string
	Value any
}

// Fields keeps accepted keys in allow-list order.
type Fields []Field

func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// With returns a copy of f with name set to value, appended when absent.
func (f Fields) With(name string, value any) Fields {
	out := make(Fields, 0, len(f)+1)
	replaced := false
	for _, field := range f {
		if field.Name == name {
			field.Value = value
			replaced = true
		}
		out = append(out, field)
	}
	if !replaced {
		out = append(out, Field{Name: name, Value: value})
	}
	return out
}

// Validate filters body down to the required and optional keys. A required
// key never carries null or a blank string. In All mode every required key
// must be present; in Any mode at least one accepted key must be, and only
// optional keys may be cleared with JSON null.
func Validate(body map[string]any, required []string, mode Mode, optional ...string) (Fields, error) {
	accepted := append(append([]string{}, required...), optional...)

	var fields Fields
	for _, name := range accepted {
		if value, ok := body[name]; ok {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}

	switch mode {
	case All:
		var missing []string
		for _, name := range required {
			if value, ok := body[name]; !ok || isBlank(value) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Mode: All, Required: required, Missing: missing}
		}
	case Any:
		if len(fields) == 0 {
			return nil, &ValidationError{Mode: Any, Required: accepted, Missing: accepted}
		}
		var blank []string
		for _, name := range required {
			if value, ok := body[name]; ok && isBlank(value) {
				blank = append(blank, name)
			}
		}
		if len(blank) > 0 {
			return nil, &ValidationError{Mode: All, Required: blank, Missing: blank}
		}
	default:
		return nil, fmt.Errorf("unknown validation mode %d", mode)
	}

	return fields, nil
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// Decode reads a JSON object, keeping numbers as json.Number so ids and
// integers survive untouched.
func Decode(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
