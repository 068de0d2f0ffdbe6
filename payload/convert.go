package payload

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// AsID converts a decoded JSON value or path segment into a positive id.
// Numeric strings are accepted.
func AsID(value any) (int64, error) {
	var id int64

	switch v := value.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, ErrInvalidID
		}
		id = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, ErrInvalidID
		}
		id = n
	case int64:
		id = v
	case int:
		id = int64(v)
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 {
			return 0, ErrInvalidID
		}
		id = int64(v)
	default:
		return 0, ErrInvalidID
	}

	if id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
