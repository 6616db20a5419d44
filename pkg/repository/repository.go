package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/simplefw/pkg/entity"
	"github.com/dmitrymomot/simplefw/pkg/inflect"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

// CRUD is the set of operations controllers rely on.
type CRUD[T any] interface {
	All(ctx context.Context) ([]*T, error)
	One(ctx context.Context, id ...any) (*T, error)
	FindBy(ctx context.Context, filters map[string]any) ([]*T, error)
	Insert(ctx context.Context, item *T) (int64, error)
	Update(ctx context.Context, item *T) (int64, error)
	Save(ctx context.Context, item *T) (int64, error)
	Delete(ctx context.Context, item *T) (int64, error)
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	table       string
	primaryKey  []string
	generatedPK bool
}

// WithTable overrides the table name.
func WithTable(name string) Option {
	return func(o *options) { o.table = name }
}

// WithPrimaryKey overrides the primary key columns.
func WithPrimaryKey(cols ...string) Option {
	return func(o *options) { o.primaryKey = cols }
}

// WithGeneratedPK tells whether the database generates the primary key.
// Defaults to true.
func WithGeneratedPK(generated bool) Option {
	return func(o *options) { o.generatedPK = generated }
}

// Repository is a table gateway for entity type T.
type Repository[T any] struct {
	db          sqlbuilder.Runner
	dialect     sqlbuilder.Dialect
	entity      string
	table       string
	primaryKey  []string
	generatedPK bool
}

var _ CRUD[struct{}] = (*Repository[struct{}])(nil)

// New returns a repository for T using db.
// It panics if T is not a struct type.
func New[T any](db sqlbuilder.Runner, dialect sqlbuilder.Dialect, opts ...Option) *Repository[T] {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic(fmt.Errorf("%w: %s", ErrInvalidEntity, t))
	}

	o := &options{generatedPK: true}
	for _, opt := range opts {
		opt(o)
	}

	name := t.Name()
	if o.table == "" {
		o.table = inflect.TableName(name)
	}
	if len(o.primaryKey) == 0 {
		o.primaryKey = []string{inflect.ColumnName(name + "Id")}
	}

	return &Repository[T]{
		db:          db,
		dialect:     dialect,
		entity:      name,
		table:       o.table,
		primaryKey:  o.primaryKey,
		generatedPK: o.generatedPK,
	}
}

func (r *Repository[T]) Table() string               { return r.table }
func (r *Repository[T]) Entity() string              { return r.entity }
func (r *Repository[T]) PrimaryKey() []string        { return r.primaryKey }
func (r *Repository[T]) Dialect() sqlbuilder.Dialect { return r.dialect }
func (r *Repository[T]) DB() sqlbuilder.Runner       { return r.db }

// Query starts a select on the repository table.
func (r *Repository[T]) Query() *sqlbuilder.Query {
	return sqlbuilder.New(r.dialect).From(r.table, "")
}

// Fetch runs q and hydrates the result rows.
func (r *Repository[T]) Fetch(ctx context.Context, q *sqlbuilder.Query) ([]*T, error) {
	rows, err := q.Rows(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("repository: query %s: %w", r.table, err)
	}
	return entity.FetchAll[T](rows)
}

// All returns every row of the table.
func (r *Repository[T]) All(ctx context.Context) ([]*T, error) {
	return r.Fetch(ctx, r.Query())
}

// One returns the row matching the primary key values.
func (r *Repository[T]) One(ctx context.Context, id ...any) (*T, error) {
	if len(id) != len(r.primaryKey) {
		return nil, ErrKeyMismatch
	}

	q := r.Query().Where(r.keyCondition())
	for i, col := range r.primaryKey {
		q.SetParam(col, id[i])
	}

	items, err := r.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items[0], nil
}

// FindBy returns the rows matching every column = value filter.
func (r *Repository[T]) FindBy(ctx context.Context, filters map[string]any) ([]*T, error) {
	q := r.Query()
	for col, v := range filters {
		param := "f_" + col
		q.AndWhere(col+" = :"+param).SetParam(param, v)
	}
	return r.Fetch(ctx, q)
}

// Insert writes item and stores the generated primary key back on it.
func (r *Repository[T]) Insert(ctx context.Context, item *T) (int64, error) {
	if item == nil {
		return 0, ErrNilEntity
	}

	values, err := entity.Values(item)
	if err != nil {
		return 0, err
	}

	if r.generatedPK {
		for _, col := range r.primaryKey {
			if isEmptyKey(values[col]) {
				delete(values, col)
			}
		}
	}

	q := sqlbuilder.New(r.dialect).Insert(r.table, values)

	if !r.generatedPK || len(r.primaryKey) != 1 {
		return q.Commit(ctx, r.db)
	}

	pk := r.primaryKey[0]
	if r.dialect == sqlbuilder.Postgres {
		row, err := q.Returning(pk).Row(ctx, r.db)
		if err != nil {
			return 0, err
		}
		var id int64
		if err := row.Scan(&id); err != nil {
			return 0, fmt.Errorf("repository: insert %s: %w", r.table, err)
		}
		return 1, entity.Set(item, pk, id)
	}

	query, args, err := q.Build()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("repository: insert %s: %w", r.table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return n, err
	}
	return n, entity.Set(item, pk, id)
}

// Update writes every column of item to the row with its primary key.
func (r *Repository[T]) Update(ctx context.Context, item *T) (int64, error) {
	if item == nil {
		return 0, ErrNilEntity
	}

	values, err := entity.Values(item)
	if err != nil {
		return 0, err
	}
	if r.hasEmptyKey(values) {
		return 0, ErrNoPrimaryKey
	}

	return sqlbuilder.New(r.dialect).
		Update(r.table, values, r.keyCondition()).
		Commit(ctx, r.db)
}

// Save inserts item when it has no primary key value yet, or when it is
// flagged as new, and updates it otherwise.
func (r *Repository[T]) Save(ctx context.Context, item *T) (int64, error) {
	if item == nil {
		return 0, ErrNilEntity
	}

	values, err := entity.Values(item)
	if err != nil {
		return 0, err
	}

	isNew := r.generatedPK && r.hasEmptyKey(values)
	if n, ok := any(item).(entity.Newer); ok && !r.generatedPK {
		isNew = n.IsNew()
	}

	if isNew {
		return r.Insert(ctx, item)
	}
	return r.Update(ctx, item)
}

// Delete removes the row with item's primary key.
func (r *Repository[T]) Delete(ctx context.Context, item *T) (int64, error) {
	if item == nil {
		return 0, ErrNilEntity
	}

	values, err := entity.Values(item)
	if err != nil {
		return 0, err
	}
	if r.hasEmptyKey(values) {
		return 0, ErrNoPrimaryKey
	}

	q := sqlbuilder.New(r.dialect).Delete(r.table, r.keyCondition())
	for _, col := range r.primaryKey {
		q.SetParam(col, values[col])
	}
	return q.Commit(ctx, r.db)
}

func (r *Repository[T]) keyCondition() string {
	conds := make([]string, len(r.primaryKey))
	for i, col := range r.primaryKey {
		conds[i] = col + " = :" + col
	}
	return strings.Join(conds, " AND ")
}

func (r *Repository[T]) hasEmptyKey(values map[string]any) bool {
	for _, col := range r.primaryKey {
		if v, ok := values[col]; !ok || isEmptyKey(v) {
			return true
		}
	}
	return false
}

// isEmptyKey reports whether v is nil, a nil pointer, or a pointer chain
// ending in a zero value.
func isEmptyKey(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	return rv.IsZero()
}

// IsNotFound reports whether err means the entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
