package internal

import (
	"reflect"
	"strconv"
)

// Scalar is the set of types route, URL and query values convert to.
// Named types such as `type CategoryID int64` are accepted.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or the zero value of T.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Arg converts the i-th route parameter, as in /contact/edit/<arg 0>.
// Missing or malformed values give the zero value of T.
func Arg[T Scalar](c Context, i int) T {
	v, _ := parseScalar[T](c.Arg(i))
	return v
}

// Param converts a chi URL parameter. Missing or malformed values give the
// zero value of T.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query converts a query string value. Missing or malformed values give the
// zero value of T.
func Query[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault is Query with an explicit fallback for missing or malformed
// values.
func QueryDefault[T Scalar](c Context, name string, defaultValue T) T {
	if v, ok := parseScalar[T](c.Query(name)); ok {
		return v
	}
	return defaultValue
}

// parseScalar converts raw by the underlying kind of T. An empty string only
// converts to a string type.
func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	rv := reflect.ValueOf(&out).Elem()

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
		return out, raw != ""
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return out, false
		}
		rv.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, false
		}
		rv.SetBool(b)
	default:
		return out, false
	}
	return out, true
}
