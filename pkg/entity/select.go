package entity

import (
	"fmt"
	"reflect"
)

// Option is an entry of an HTML select list.
type Option struct {
	Value string
	Label string
	Group string
}

// SelectList builds select options from a slice of entities, reading the
// value and label from the named attributes. Items that lack either
// attribute are skipped.
func SelectList(items any, valueAttr, labelAttr string) []Option {
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	opts := make([]Option, 0, rv.Len())
	for i := range rv.Len() {
		item := rv.Index(i).Interface()
		value, err := Get(item, valueAttr)
		if err != nil {
			continue
		}
		label, err := Get(item, labelAttr)
		if err != nil {
			continue
		}
		opts = append(opts, Option{Value: toString(value), Label: toString(label)})
	}
	return opts
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
