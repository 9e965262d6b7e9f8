package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

var sqlTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Direction orders query results.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Table runs whitelisted queries against one registered table and scans
// rows into T by db struct tags.
type Table[T any] struct {
	db  DBTX
	def TableDef
}

// NewTable binds a registered table to db.
func NewTable[T any](db DBTX, name string) (*Table[T], error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", name)
	}
	return &Table[T]{db: db, def: def}, nil
}

// MustTable is NewTable for tables registered at init.
func MustTable[T any](db DBTX, name string) *Table[T] {
	t, err := NewTable[T](db, name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table[T]) checkColumns(cols ...string) error {
	for _, c := range cols {
		if !t.def.HasColumn(c) {
			return fmt.Errorf("unknown column %q for table %s", c, t.def.Name)
		}
	}
	return nil
}

// Select starts a query returning columns, or every column when none are
// given.
func (t *Table[T]) Select(columns ...string) *Query[T] {
	q := &Query[T]{t: t, columns: columns, where: NewWhereBuilder()}
	q.err = t.checkColumns(columns...)
	return q
}

// Query is a SELECT under construction. The first invalid column makes
// every later call a no-op and is returned by All, One and SQL.
type Query[T any] struct {
	t       *Table[T]
	columns []string
	where   *WhereBuilder
	order   []string
	limit   int
	err     error
}

// Eq filters on column = value.
func (q *Query[T]) Eq(column string, value any) *Query[T] {
	if q.err == nil {
		if q.err = q.t.checkColumns(column); q.err == nil {
			q.where.AddExact(quoteIdentifier(column), value)
		}
	}
	return q
}

// Filter is Eq that is skipped when value is nil or "".
func (q *Query[T]) Filter(column string, value any) *Query[T] {
	if q.err == nil {
		if q.err = q.t.checkColumns(column); q.err == nil {
			q.where.Add(quoteIdentifier(column), value)
		}
	}
	return q
}

// Order sorts by column. Calls accumulate.
func (q *Query[T]) Order(column string, dir Direction) *Query[T] {
	if dir != Desc {
		dir = Asc
	}
	if q.err == nil {
		if q.err = q.t.checkColumns(column); q.err == nil {
			q.order = append(q.order, quoteIdentifier(column)+" "+string(dir))
		}
	}
	return q
}

// Limit caps the number of rows. Zero means no limit.
func (q *Query[T]) Limit(n int) *Query[T] {
	q.limit = n
	return q
}

// SQL returns the statement and its arguments.
func (q *Query[T]) SQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	cols := "*"
	if len(q.columns) > 0 {
		quoted := make([]string, len(q.columns))
		for i, c := range q.columns {
			quoted[i] = quoteIdentifier(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args := q.where.Build()
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", cols, quoteIdentifier(q.t.def.Name), where)
	if len(q.order) > 0 {
		b.WriteString(" ORDER BY " + strings.Join(q.order, ", "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}
	return b.String(), args, nil
}

// All returns every matching row.
func (q *Query[T]) All(ctx context.Context) ([]T, error) {
	sql, args, err := q.SQL()
	if err != nil {
		return nil, err
	}
	rows, err := q.t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.t.def.Name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", q.t.def.Name, err)
	}
	return out, nil
}

// One returns the first matching row or an error wrapping core.ErrNotFound.
func (q *Query[T]) One(ctx context.Context) (T, error) {
	var zero T
	sql, args, err := q.Limit(1).SQL()
	if err != nil {
		return zero, err
	}
	rows, err := q.t.db.Query(ctx, sql, args...)
	if err != nil {
		return zero, fmt.Errorf("query %s: %w", q.t.def.Name, err)
	}
	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("%s: %w", q.t.def.Name, core.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("scan %s: %w", q.t.def.Name, err)
	}
	return out, nil
}

// Record is a row to write, keyed by column name.
type Record map[string]any

// InsertSQL builds one multi-row INSERT for records. Columns missing from
// a record are written as DEFAULT.
func (t *Table[T]) InsertSQL(records ...Record) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, errors.New("insert: no records")
	}

	var cols []string
	for _, r := range records {
		for c := range r {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}
	slices.Sort(cols)
	if err := t.checkColumns(cols...); err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return "", nil, errors.New("insert: records have no columns")
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdentifier(c)
	}

	var (
		args   []any
		tuples = make([]string, len(records))
	)
	for i, r := range records {
		vals := make([]string, len(cols))
		for j, c := range cols {
			v, ok := r[c]
			if !ok {
				vals[j] = "DEFAULT"
				continue
			}
			args = append(args, v)
			vals[j] = fmt.Sprintf("$%d", len(args))
		}
		tuples[i] = "(" + strings.Join(vals, ", ") + ")"
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		quoteIdentifier(t.def.Name), strings.Join(quoted, ", "), strings.Join(tuples, ", "))
	return sql, args, nil
}

// Insert writes records with a single statement and returns the stored rows.
func (t *Table[T]) Insert(ctx context.Context, records ...Record) ([]T, error) {
	if len(records) == 0 {
		return nil, nil
	}
	sql, args, err := t.InsertSQL(records...)
	if err != nil {
		return nil, err
	}
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.def.Name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.def.Name, err)
	}
	return out, nil
}

// MaxBindParams is the most parameters Postgres accepts in one statement.
const MaxBindParams = 65535

// ArrayColumn is one column of a bulk insert: every row's value for Name,
// sent as a single array parameter of SQL type Type[].
type ArrayColumn struct {
	Name   string
	Type   string
	Values any
}

// InsertArraysSQL builds one INSERT ... SELECT FROM unnest(...) that writes
// as many rows as each column has values. It takes one parameter per
// column, however many rows there are. Every Values must be a slice of the
// same length.
func (t *Table[T]) InsertArraysSQL(columns ...ArrayColumn) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, errors.New("insert: no columns")
	}

	rows := -1
	quoted := make([]string, len(columns))
	params := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		if err := t.checkColumns(c.Name); err != nil {
			return "", nil, err
		}
		if !sqlTypePattern.MatchString(c.Type) {
			return "", nil, fmt.Errorf("insert: invalid type %q for column %s", c.Type, c.Name)
		}
		v := reflect.ValueOf(c.Values)
		if v.Kind() != reflect.Slice {
			return "", nil, fmt.Errorf("insert: values of column %s are not a slice", c.Name)
		}
		if rows >= 0 && v.Len() != rows {
			return "", nil, fmt.Errorf("insert: column %s has %d values, want %d", c.Name, v.Len(), rows)
		}
		rows = v.Len()

		quoted[i] = quoteIdentifier(c.Name)
		params[i] = fmt.Sprintf("$%d::%s[]", i+1, c.Type)
		args[i] = c.Values
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) SELECT * FROM unnest(%s) RETURNING *",
		quoteIdentifier(t.def.Name), strings.Join(quoted, ", "), strings.Join(params, ", "))
	return sql, args, nil
}

// InsertArrays writes every row of columns with a single statement and
// returns the stored rows.
func (t *Table[T]) InsertArrays(ctx context.Context, columns ...ArrayColumn) ([]T, error) {
	sql, args, err := t.InsertArraysSQL(columns...)
	if err != nil {
		return nil, err
	}
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.def.Name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.def.Name, err)
	}
	return out, nil
}

// UpdateSQL builds an UPDATE of the row with key id.
func (t *Table[T]) UpdateSQL(id any, partial Record) (string, []any, error) {
	if len(partial) == 0 {
		return "", nil, errors.New("update: nothing to set")
	}

	cols := make([]string, 0, len(partial))
	for c := range partial {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	if err := t.checkColumns(cols...); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		args = append(args, partial[c])
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdentifier(c), i+1)
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		quoteIdentifier(t.def.Name), strings.Join(sets, ", "), quoteIdentifier(t.def.Key), len(args))
	return sql, args, nil
}

// Update sets the columns in partial on the row with key id and returns
// the updated row. An empty partial returns the row unchanged.
func (t *Table[T]) Update(ctx context.Context, id any, partial Record) (T, error) {
	if len(partial) == 0 {
		return t.Select().Eq(t.def.Key, id).One(ctx)
	}

	var zero T
	sql, args, err := t.UpdateSQL(id, partial)
	if err != nil {
		return zero, err
	}
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", t.def.Name, err)
	}
	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("%s: %w", t.def.Name, core.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", t.def.Name, err)
	}
	return out, nil
}

// Delete removes the row with key id.
func (t *Table[T]) Delete(ctx context.Context, id any) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quoteIdentifier(t.def.Name), quoteIdentifier(t.def.Key))
	tag, err := t.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.def.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", t.def.Name, core.ErrNotFound)
	}
	return nil
}
