package entity

import (
	"database/sql"
	"fmt"
	"reflect"
)

// Newer is implemented by entities that track whether they were loaded from
// storage or created in memory.
type Newer interface {
	SetNew(isNew bool)
	IsNew() bool
}

// State can be embedded in an entity to implement Newer.
type State struct {
	isNew bool
}

func (s *State) SetNew(isNew bool) { s.isNew = isNew }
func (s *State) IsNew() bool       { return s.isNew }

// Hydrate fills dst from a column map. Columns without a matching field are
// ignored.
func Hydrate(dst any, row map[string]any, isNew bool) error {
	rv, err := settableStruct(dst)
	if err != nil {
		return err
	}

	fs := fieldsOf(rv.Type())
	for col, v := range row {
		f, ok := fs.lookup(col)
		if !ok {
			continue
		}
		if err := assign(rv.FieldByIndex(f.index), v); err != nil {
			return fmt.Errorf("entity: column %s: %w", col, err)
		}
	}

	if n, ok := dst.(Newer); ok {
		n.SetNew(isNew)
	}
	return nil
}

// ScanMaps reads all remaining rows into column maps and closes rows.
func ScanMaps(rows *sql.Rows) ([]map[string]any, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// FetchAll scans rows into new entities of type T.
func FetchAll[T any](rows *sql.Rows) ([]*T, error) {
	maps, err := ScanMaps(rows)
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(maps))
	for _, m := range maps {
		item := new(T)
		if err := Hydrate(item, m, false); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// FetchOne scans the first row into a new entity of type T.
// It returns sql.ErrNoRows when the result set is empty.
func FetchOne[T any](rows *sql.Rows) (*T, error) {
	items, err := FetchAll[T](rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

// Values maps each column of src to its field value. Relation fields
// (nested structs) and fields tagged `db:"name,readonly"` are skipped.
func Values(src any) (map[string]any, error) {
	rv, err := structValue(src)
	if err != nil {
		return nil, err
	}

	fs := fieldsOf(rv.Type())
	values := make(map[string]any, len(fs.list))
	for _, f := range fs.list {
		if f.readonly {
			continue
		}
		values[f.column] = rv.FieldByIndex(f.index).Interface()
	}
	return values, nil
}

// Columns returns the mapped column names of src in declaration order.
func Columns(src any) ([]string, error) {
	rv, err := structValue(src)
	if err != nil {
		return nil, err
	}

	fs := fieldsOf(rv.Type())
	cols := make([]string, len(fs.list))
	for i, f := range fs.list {
		cols[i] = f.column
	}
	return cols, nil
}

// Get returns the value of attr on src. Pointer values are dereferenced and
// nil pointers yield nil.
func Get(src any, attr string) (any, error) {
	rv, err := structValue(src)
	if err != nil {
		return nil, err
	}

	f, ok := fieldsOf(rv.Type()).lookup(attr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, attr)
	}

	fv := rv.FieldByIndex(f.index)
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}
	return fv.Interface(), nil
}

// Set assigns value to attr on dst.
func Set(dst any, attr string, value any) error {
	rv, err := settableStruct(dst)
	if err != nil {
		return err
	}

	f, ok := fieldsOf(rv.Type()).lookup(attr)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, attr)
	}
	return assign(rv.FieldByIndex(f.index), value)
}

// Has reports whether src has attr.
func Has(src any, attr string) bool {
	rv, err := structValue(src)
	if err != nil {
		return false
	}
	_, ok := fieldsOf(rv.Type()).lookup(attr)
	return ok
}

// Map copies every attribute of src that dst also has.
func Map(src, dst any) error {
	sv, err := structValue(src)
	if err != nil {
		return err
	}
	dv, err := settableStruct(dst)
	if err != nil {
		return err
	}

	sfs := fieldsOf(sv.Type())
	dfs := fieldsOf(dv.Type())
	for _, f := range sfs.list {
		df, ok := dfs.byKey[f.key]
		if !ok {
			continue
		}
		if err := assign(dv.FieldByIndex(df.index), sv.FieldByIndex(f.index).Interface()); err != nil {
			return fmt.Errorf("entity: attribute %s: %w", f.column, err)
		}
	}
	return nil
}
