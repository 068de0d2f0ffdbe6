package payload

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotAllowed  = errors.New("value not allowed")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidType = errors.New("invalid type")
)

// RuleError describes a present key whose value breaks a rule.
type RuleError struct {
	Field   string
	Message string
	Allowed []string // set for ErrNotAllowed
	err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *RuleError) Unwrap() error {
	return e.err
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// CheckOneOf verifies that name, when present, holds one of allowed.
func CheckOneOf(fields Fields, name string, allowed []string) error {
	value, ok := fields.Get(name)
	if !ok {
		return nil
	}

	s, isString := value.(string)
	if !isString || instance().Var(s, "oneof="+strings.Join(allowed, " ")) != nil {
		return &RuleError{
			Field:   name,
			Message: "must be one of " + strings.Join(allowed, ", "),
			Allowed: allowed,
			err:     ErrNotAllowed,
		}
	}
	return nil
}

// CheckDates verifies that each named key, when present and not null, is a
// YYYY-MM-DD string.
func CheckDates(fields Fields, names ...string) error {
	for _, name := range names {
		value, ok := fields.Get(name)
		if !ok || value == nil {
			continue
		}

		s, isString := value.(string)
		if !isString || instance().Var(s, "datetime=2006-01-02") != nil {
			return &RuleError{
				Field:   name,
				Message: "must be a date formatted as YYYY-MM-DD",
				err:     ErrInvalidDate,
			}
		}
	}
	return nil
}

// CheckStrings verifies that each named key, when present, holds a string.
func CheckStrings(fields Fields, names ...string) error {
	for _, name := range names {
		value, ok := fields.Get(name)
		if !ok {
			continue
		}
		if _, isString := value.(string); !isString {
			return &RuleError{Field: name, Message: "must be a string", err: ErrInvalidType}
		}
	}
	return nil
}

// CheckID verifies that name, when present, holds a positive integer.
func CheckID(fields Fields, name string) error {
	value, ok := fields.Get(name)
	if !ok {
		return nil
	}
	if _, err := AsID(value); err != nil {
		return &RuleError{Field: name, Message: "must be a positive integer", err: ErrInvalidType}
	}
	return nil
}
