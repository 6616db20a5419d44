package entity

import (
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrymomot/simplefw/pkg/inflect"
)

// field describes one mapped struct field.
type field struct {
	index    []int
	column   string
	key      string
	readonly bool
}

type fieldSet struct {
	list  []field
	byKey map[string]field
}

var fieldCache sync.Map // reflect.Type -> *fieldSet

func fieldsOf(t reflect.Type) *fieldSet {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.(*fieldSet)
	}

	fs := &fieldSet{byKey: make(map[string]field)}
	collect(t, nil, fs)

	actual, _ := fieldCache.LoadOrStore(t, fs)
	return actual.(*fieldSet)
}

func collect(t reflect.Type, parent []int, fs *fieldSet) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		index := append(append([]int(nil), parent...), i)
		tag := sf.Tag.Get("db")
		if tag == "-" {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag == "" {
			collect(sf.Type, index, fs)
			continue
		}

		if tag == "" && isRelation(sf.Type) {
			continue
		}

		column, opts, _ := strings.Cut(tag, ",")
		if column == "" {
			column = inflect.ColumnName(sf.Name)
		}

		f := field{
			index:    index,
			column:   column,
			key:      inflect.Normalize(column),
			readonly: opts == "readonly",
		}
		fs.list = append(fs.list, f)
		fs.byKey[f.key] = f
		if k := inflect.Normalize(sf.Name); k != f.key {
			if _, exists := fs.byKey[k]; !exists {
				fs.byKey[k] = f
			}
		}
	}
}

// isRelation reports whether t is a nested entity rather than a column value.
func isRelation(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	if t == timeType || reflect.PointerTo(t).Implements(scannerType) {
		return false
	}
	return true
}

// lookup finds the field for an attribute or column name.
func (fs *fieldSet) lookup(name string) (field, bool) {
	f, ok := fs.byKey[inflect.Normalize(name)]
	return f, ok
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, ErrNotStruct
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStruct
	}
	return rv, nil
}

func settableStruct(dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotStructPointer
	}
	return rv.Elem(), nil
}
