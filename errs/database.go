package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseTimeout    = errors.New("database timeout")
)

// Database & Storage Specific Errors
var (
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrInvalidTextRepresentation = errors.New("invalid text representation")
)

// SQLSTATE codes mapped by FromDatabase.
const (
	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeNotNullViolation      = "23502"
	codeCheckViolation        = "23514"
	codeInvalidText           = "22P02"
	codeInvalidDatetime       = "22007"
	codeDatetimeOverflow      = "22008"
	codeStringTooLong         = "22001"
	codeConnectionClassPrefix = "08"
)

var (
	keyColumnPattern = regexp.MustCompile(`^Key \("?([A-Za-z0-9_]+)"?\)=`)
	enumPattern      = regexp.MustCompile(`invalid input value for enum "?([^":]+)"?`)

	enumsMu sync.RWMutex
	enums   = map[string]enumInfo{}
)

type enumInfo struct {
	field   string
	allowed []string
}

// RegisterEnum tells FromDatabase how to describe a postgres enum type when
// the driver rejects one of its values.
func RegisterEnum(typeName, field string, allowed []string) {
	enumsMu.Lock()
	defer enumsMu.Unlock()
	enums[typeName] = enumInfo{field: field, allowed: allowed}
}

func lookupEnum(typeName string) (enumInfo, bool) {
	enumsMu.RLock()
	defer enumsMu.RUnlock()
	info, ok := enums[typeName]
	return info, ok
}

// Humanize capitalises the first word of an entity name.
func Humanize(entity string) string {
	words := strings.Fields(entity)
	if len(words) == 0 {
		return ""
	}
	words[0] = cases.Title(language.English, cases.NoLower).String(words[0])
	return strings.Join(words, " ")
}

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s already exists.", Humanize(entity)),
		kind:       ErrAlreadyExists,
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s not found.", Humanize(entity)),
		kind:       ErrNotFound,
	}
}

// NewDatabaseError is the generic failure for a storage error nothing else
// classified. The cause is kept for logs only.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New("Internal server error."),
		kind:       ErrDatabaseQuery,
		Cause:      fmt.Errorf("failed to %s %s: %w", operation, entity, cause),
	}
}

// FromDatabase translates a storage error into an ApiErr. Unique violations
// become 409, enum and format violations 400, missing rows and dangling
// references 404, connection trouble 503, and anything else a generic 500.
// Errors that already are ApiErr pass through untouched.
func FromDatabase(operation, entity string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		e := NewNotFound(entity)
		e.Cause = err
		return e
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        errors.New("Request timed out."),
			kind:       ErrDatabaseTimeout,
			Cause:      err,
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return unavailable(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NewDatabaseError(operation, entity, err)
	}

	switch {
	case pgErr.Code == codeUniqueViolation:
		e := NewAlreadyExists(entity)
		if column := keyColumn(pgErr.Detail); column != "" {
			e = NewAlreadyExists(column)
			e.Field = column
		}
		e.Cause = err
		return e

	case pgErr.Code == codeForeignKeyViolation:
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        errors.New("Referenced resource not found."),
			kind:       ErrForeignKeyConstraint,
			Field:      keyColumn(pgErr.Detail),
			Cause:      err,
		}

	case pgErr.Code == codeNotNullViolation:
		e := NewMissingRequiredFieldError(pgErr.ColumnName)
		e.Cause = err
		return e

	case pgErr.Code == codeInvalidText:
		if m := enumPattern.FindStringSubmatch(pgErr.Message); m != nil {
			if info, ok := lookupEnum(m[1]); ok {
				e := NewConstraintViolation(info.field, info.allowed)
				e.Cause = err
				return e
			}
		}
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        errors.New("Invalid value."),
			kind:       ErrInvalidTextRepresentation,
			Cause:      err,
		}

	case pgErr.Code == codeInvalidDatetime || pgErr.Code == codeDatetimeOverflow:
		e := NewInvalidFieldError("date", "must be formatted as YYYY-MM-DD")
		e.Cause = err
		return e

	case pgErr.Code == codeStringTooLong:
		e := NewInvalidFieldError("value", "is too long")
		e.Cause = err
		return e

	case pgErr.Code == codeCheckViolation:
		e := NewBadRequestError("Value violates a constraint.")
		e.Cause = err
		return e

	case strings.HasPrefix(pgErr.Code, codeConnectionClassPrefix):
		return unavailable(err)
	}

	return NewDatabaseError(operation, entity, err)
}

func unavailable(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        errors.New("Database unavailable."),
		kind:       ErrDatabaseConnection,
		Cause:      cause,
	}
}

// keyColumn pulls the column out of a single column key detail such as
// `Key (email)=(ada@x.com) already exists.`
func keyColumn(detail string) string {
	if m := keyColumnPattern.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	return ""
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
