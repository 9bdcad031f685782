// Package patch applies partial updates from decoded JSON objects through a
// closed set of typed field setters. Keys without a setter are reported back
// to the caller and never touch the target.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// Setter coerces a decoded JSON value and assigns it to a field of dst.
type Setter[T any] func(dst *T, v any) error

// Fields maps wire field names to their setters.
type Fields[T any] map[string]Setter[T]

// Apply runs the setter of every known key in fields against dst. Keys are
// visited in sorted order. Coercion failures are collected into a single
// *domain.ValidationError; dst may be partially modified when one is returned.
func (f Fields[T]) Apply(dst *T, fields map[string]any) (ignored []string, err error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []domain.FieldError
	for _, k := range keys {
		set, ok := f[k]
		if !ok {
			ignored = append(ignored, k)
			continue
		}
		if err := set(dst, fields[k]); err != nil {
			errs = append(errs, domain.FieldError{Field: k, Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return ignored, domain.NewValidationErrors(errs)
	}
	return ignored, nil
}

var errNull = errors.New("must not be null")

// String accepts a non-null JSON string.
func String(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", errNull
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("must be a string, got %s", kind(v))
	}
}

// OptString is String where null clears the field.
func OptString(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, err := String(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Int64 accepts any integral numeric representation: a JSON number without a
// fractional part or a string holding a base-10 integer.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, errNull
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", n.String())
		}
		return integral(f)
	case float64:
		return integral(n)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("must be an integer, got %s", kind(v))
	}
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("must be an integer, got %v", f)
	}
	return int64(f), nil
}

// OptInt is Int64 narrowed to int where null clears the field.
func OptInt(v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	i, err := Int64(v)
	if err != nil {
		return nil, err
	}
	if i > math.MaxInt32 || i < math.MinInt32 {
		return nil, fmt.Errorf("out of range: %d", i)
	}
	n := int(i)
	return &n, nil
}

// OptBool accepts a JSON boolean; null clears the field.
func OptBool(v any) (*bool, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &b, nil
	default:
		return nil, fmt.Errorf("must be a boolean, got %s", kind(v))
	}
}

// Decimal accepts a JSON number or a string holding a decimal number.
func Decimal(v any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch n := v.(type) {
	case nil:
		return decimal.Decimal{}, errNull
	case json.Number:
		d, err = decimal.NewFromString(n.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(n))
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	default:
		return decimal.Decimal{}, fmt.Errorf("must be a decimal number, got %s", kind(v))
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("must be a decimal number, got %v", v)
	}
	return d, nil
}

// OptDate accepts a YYYY-MM-DD string; null clears the field.
func OptDate(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	s, err := String(v)
	if err != nil {
		return nil, err
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Timestamp accepts an ISO-8601 date-time string.
func Timestamp(v any) (time.Time, error) {
	s, err := String(v)
	if err != nil {
		return time.Time{}, err
	}
	return domain.ParseTimestamp(s)
}

func kind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
