package internal

import (
	"reflect"
	"strconv"
)

// ContextValue returns the value stored under key, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed URL parameter, zero on parse failure.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// Query returns a typed query parameter, zero on parse failure.
func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryDefault returns defaultValue when the parameter is empty or invalid.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// convertParam converts into the underlying kind of T, so named types
// such as a section ID string type work too.
func convertParam[T ~string | ~int | ~int64 | ~bool](raw string) (T, bool) {
	var zero T
	v := reflect.ValueOf(&zero).Elem()

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return zero, false
		}
		v.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		v.SetBool(b)
	default:
		return zero, false
	}
	return zero, true
}
