package sqlbuilder

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type table struct {
	name  string
	alias string
}

func (t table) String() string {
	if t.alias == "" {
		return t.name
	}
	return t.name + " AS " + t.alias
}

// Query is a fluent SELECT builder that can also queue one write statement.
// A Query is not safe for concurrent use.
type Query struct {
	dialect   Dialect
	distinct  bool
	columns   []string
	tables    []table
	joins     []string
	where     string
	groupBy   []string
	orderBy   []string
	limit     int
	offset    int
	params    map[string]any
	writes    []string
	returning []string
	seq       int
	generated map[string]bool
	err       error
}

// New returns an empty query for dialect d.
func New(d Dialect) *Query {
	return &Query{
		dialect:   d,
		limit:     -1,
		offset:    -1,
		params:    make(map[string]any),
		generated: make(map[string]bool),
	}
}

// Dialect returns the query dialect.
func (q *Query) Dialect() Dialect { return q.dialect }

// Select sets the selected columns. No columns selects "*".
func (q *Query) Select(cols ...string) *Query {
	q.columns = append(q.columns[:0], cols...)
	return q
}

// Distinct turns the select into SELECT DISTINCT.
func (q *Query) Distinct() *Query {
	q.distinct = true
	return q
}

// From adds a table to the FROM clause. alias may be empty.
func (q *Query) From(name, alias string) *Query {
	q.tables = append(q.tables, table{name: name, alias: alias})
	return q
}

// InnerJoin joins name on fk = pk, or USING(fk) when both columns share a name.
func (q *Query) InnerJoin(name, alias, fk, pk string) *Query {
	return q.join("INNER JOIN", name, alias, fk, pk)
}

// LeftJoin is InnerJoin for LEFT JOIN.
func (q *Query) LeftJoin(name, alias, fk, pk string) *Query {
	return q.join("LEFT JOIN", name, alias, fk, pk)
}

func (q *Query) join(kind, name, alias, fk, pk string) *Query {
	t := table{name: name, alias: alias}.String()
	if fk == pk {
		q.joins = append(q.joins, fmt.Sprintf("%s %s USING(%s)", kind, t, fk))
	} else {
		q.joins = append(q.joins, fmt.Sprintf("%s %s ON %s = %s", kind, t, fk, pk))
	}
	return q
}

// Where replaces the WHERE condition.
func (q *Query) Where(cond string) *Query {
	q.where = cond
	return q
}

// AndWhere appends cond with AND.
func (q *Query) AndWhere(cond string) *Query {
	return q.appendWhere("AND", cond)
}

// OrWhere appends cond with OR.
func (q *Query) OrWhere(cond string) *Query {
	return q.appendWhere("OR", cond)
}

func (q *Query) appendWhere(op, cond string) *Query {
	if q.where == "" {
		q.where = cond
		return q
	}
	q.where = q.where + " " + op + " " + cond
	return q
}

// In replaces the WHERE condition with "col IN (...)". Values are bound as
// parameters; an empty list yields a condition that matches nothing.
func (q *Query) In(col string, values ...any) *Query {
	return q.Where(q.inCond(col, values))
}

// AndIn appends an IN condition with AND.
func (q *Query) AndIn(col string, values ...any) *Query {
	return q.AndWhere(q.inCond(col, values))
}

// OrIn appends an IN condition with OR.
func (q *Query) OrIn(col string, values ...any) *Query {
	return q.OrWhere(q.inCond(col, values))
}

// InQuery appends "col IN (subquery)" with AND and adopts the subquery params.
// Parameters generated by the subquery's own In calls are renamed so they
// cannot collide with the outer ones. A named parameter bound on both sides
// to different values makes Build fail with ErrParamConflict.
func (q *Query) InQuery(col string, sub *Query) *Query {
	if sub.err != nil && q.err == nil {
		q.err = sub.err
	}

	renamed := make(map[string]string)
	for name, v := range sub.params {
		if sub.generated[name] {
			renamed[name] = q.nextParam(v)
			continue
		}
		if cur, ok := q.params[name]; ok && !reflect.DeepEqual(cur, v) {
			if q.err == nil {
				q.err = fmt.Errorf("%w: %s", ErrParamConflict, name)
			}
			continue
		}
		q.params[name] = v
	}

	subSQL, _ := rewriteParams(sub.selectSQL(), func(name string) (string, error) {
		if r, ok := renamed[name]; ok {
			return ":" + r, nil
		}
		return ":" + name, nil
	})
	return q.AndWhere(col + " IN (" + subSQL + ")")
}

func (q *Query) inCond(col string, values []any) string {
	if len(values) == 0 {
		return "1 = 0"
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = ":" + q.nextParam(v)
	}
	return col + " IN (" + strings.Join(names, ", ") + ")"
}

// nextParam binds v under a fresh generated name and returns that name.
func (q *Query) nextParam(v any) string {
	for {
		q.seq++
		name := "in_" + strconv.Itoa(q.seq)
		if _, taken := q.params[name]; taken {
			continue
		}
		q.params[name] = v
		q.generated[name] = true
		return name
	}
}

// OrderBy appends an ascending sort. Plain column names are qualified with
// the first table's alias (or name).
func (q *Query) OrderBy(col string) *Query {
	q.orderBy = append(q.orderBy, q.qualify(col))
	return q
}

// OrderByDesc appends a descending sort.
func (q *Query) OrderByDesc(col string) *Query {
	q.orderBy = append(q.orderBy, q.qualify(col)+" DESC")
	return q
}

func (q *Query) qualify(col string) string {
	if len(q.tables) == 0 || !plainIdent.MatchString(col) {
		return col
	}
	prefix := q.tables[0].alias
	if prefix == "" {
		prefix = q.tables[0].name
	}
	return prefix + "." + col
}

// GroupBy sets the GROUP BY columns.
func (q *Query) GroupBy(cols ...string) *Query {
	q.groupBy = append(q.groupBy[:0], cols...)
	return q
}

// Limit sets LIMIT and OFFSET. A negative offset omits OFFSET.
func (q *Query) Limit(limit, offset int) *Query {
	q.limit = limit
	q.offset = offset
	return q
}

// SetParam binds a named parameter.
func (q *Query) SetParam(name string, value any) *Query {
	q.params[strings.TrimPrefix(name, ":")] = value
	return q
}

// SetParams binds several named parameters.
func (q *Query) SetParams(params map[string]any) *Query {
	for k, v := range params {
		q.SetParam(k, v)
	}
	return q
}

// Params returns a copy of the bound parameters.
func (q *Query) Params() map[string]any {
	return maps.Clone(q.params)
}

// Insert queues an INSERT of values into name. Nil values are skipped and
// columns are written in sorted order.
func (q *Query) Insert(name string, values map[string]any) *Query {
	cols := make([]string, 0, len(values))
	for col, v := range values {
		if isNil(v) {
			continue
		}
		cols = append(cols, col)
	}
	slices.Sort(cols)

	names := make([]string, len(cols))
	for i, col := range cols {
		q.params[col] = values[col]
		names[i] = ":" + col
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(cols, ", "), strings.Join(names, ", "))
	if len(cols) == 0 && q.dialect != MySQL {
		stmt = "INSERT INTO " + name + " DEFAULT VALUES"
	}
	q.writes = append(q.writes, stmt)
	return q
}

// Returning adds a RETURNING clause to the queued INSERT on dialects that
// support it.
func (q *Query) Returning(cols ...string) *Query {
	q.returning = cols
	return q
}

// Update queues an UPDATE of name setting values where cond holds.
func (q *Query) Update(name string, values map[string]any, cond string) *Query {
	cols := slices.Sorted(maps.Keys(values))
	sets := make([]string, len(cols))
	for i, col := range cols {
		q.params[col] = values[col]
		sets[i] = col + " = :" + col
	}

	stmt := "UPDATE " + name + " SET " + strings.Join(sets, ", ")
	if cond != "" {
		stmt += " WHERE " + cond
	}
	q.writes = append(q.writes, stmt)
	return q
}

// Delete queues a DELETE from name where cond holds.
func (q *Query) Delete(name, cond string) *Query {
	stmt := "DELETE FROM " + name
	if cond != "" {
		stmt += " WHERE " + cond
	}
	q.writes = append(q.writes, stmt)
	return q
}

// SQL returns the statement with named parameters: the queued write when
// there is exactly one, the SELECT otherwise.
func (q *Query) SQL() string {
	if len(q.writes) == 1 {
		return q.writeSQL()
	}
	return q.selectSQL()
}

// Build binds the statement returned by SQL to the dialect placeholders.
func (q *Query) Build() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.writes) > 1 {
		return "", nil, ErrAmbiguousCommit
	}
	return Bind(q.dialect, q.SQL(), q.params)
}

// Commit executes the queued write and returns the affected row count.
func (q *Query) Commit(ctx context.Context, db Runner) (int64, error) {
	switch len(q.writes) {
	case 0:
		return 0, ErrNothingToCommit
	case 1:
	default:
		return 0, ErrAmbiguousCommit
	}

	query, args, err := q.Build()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Rows runs the query and returns the result set.
func (q *Query) Rows(ctx context.Context, db Runner) (*sql.Rows, error) {
	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, query, args...)
}

// Row runs the query expecting at most one row.
func (q *Query) Row(ctx context.Context, db Runner) (*sql.Row, error) {
	query, args, err := q.Build()
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, query, args...), nil
}

func (q *Query) writeSQL() string {
	stmt := q.writes[0]
	if len(q.returning) > 0 && q.dialect.SupportsReturning() && strings.HasPrefix(stmt, "INSERT") {
		stmt += " RETURNING " + strings.Join(q.returning, ", ")
	}
	return stmt
}

func (q *Query) selectSQL() string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if q.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(q.columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(q.columns, ", "))
	}

	if len(q.tables) > 0 {
		names := make([]string, len(q.tables))
		for i, t := range q.tables {
			names[i] = t.String()
		}
		b.WriteString(" FROM ")
		b.WriteString(strings.Join(names, ", "))
	}

	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}

	if q.where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(q.where)
	}

	if len(q.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.groupBy, ", "))
	}

	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}

	if q.limit >= 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
		if q.offset >= 0 {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.Itoa(q.offset))
		}
	}

	return b.String()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
