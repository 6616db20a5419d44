package entity

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// assign stores v into dst, converting between the representations drivers
// and HTML forms produce.
func assign(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if dst.CanAddr() {
		if sc, ok := dst.Addr().Interface().(sql.Scanner); ok {
			return sc.Scan(v)
		}
	}

	if dst.Kind() == reflect.Pointer {
		if s, ok := v.(string); ok && s == "" && dst.Type().Elem().Kind() != reflect.String {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	src := reflect.ValueOf(v)
	for src.Kind() == reflect.Pointer {
		if src.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		src = src.Elem()
	}

	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}

	if b, ok := src.Interface().([]byte); ok {
		return assignString(dst, string(b))
	}

	if src.Kind() == reflect.String {
		return assignString(dst, src.String())
	}

	if isNumber(src.Kind()) && isNumber(dst.Kind()) {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}

	if dst.Kind() == reflect.String {
		dst.SetString(fmt.Sprint(src.Interface()))
		return nil
	}

	if dst.Kind() == reflect.Bool && isNumber(src.Kind()) {
		dst.SetBool(!src.IsZero())
		return nil
	}

	return fmt.Errorf("%w: %T into %s", ErrConvert, v, dst.Type())
}

func assignString(dst reflect.Value, s string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			dst.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrConvert, s, err)
		}
		dst.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			dst.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrConvert, s, err)
		}
		dst.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		if s == "" {
			dst.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrConvert, s, err)
		}
		dst.SetFloat(f)
		return nil
	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "0", "false", "off", "no":
			dst.SetBool(false)
		default:
			dst.SetBool(true)
		}
		return nil
	}

	if dst.Type() == timeType {
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				dst.Set(reflect.ValueOf(t))
				return nil
			}
		}
	}

	return fmt.Errorf("%w: string into %s", ErrConvert, dst.Type())
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
