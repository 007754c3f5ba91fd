// Package querybuilder assembles parameterized Postgres statements. It covers
// the small SQL surface the repositories need and always emits $n
// placeholders.
package querybuilder

import (
	"fmt"
	"strings"
)

type Condition struct {
	expr string
	args []any
}

// Eq builds "column = $n".
func Eq(column string, value any) Condition {
	return Condition{expr: column + " = ?", args: []any{value}}
}

// In builds "column IN ($n, ...)". An empty value list matches nothing.
func In(column string, values ...any) Condition {
	if len(values) == 0 {
		return Condition{expr: "1 = 0"}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return Condition{expr: column + " IN (" + placeholders + ")", args: values}
}

// IsNull builds "column IS NULL".
func IsNull(column string) Condition {
	return Condition{expr: column + " IS NULL"}
}

// Expr wraps a raw fragment with ? placeholders.
func Expr(expr string, args ...any) Condition {
	return Condition{expr: expr, args: args}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("select: missing table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: missing columns")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	args = appendWhere(&sb, b.where, args)

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}

	return rewritePlaceholders(sb.String()), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends a raw trailing clause, typically ON CONFLICT.
func (b *InsertBuilder) Suffix(suffix string) *InsertBuilder {
	b.suffix = suffix
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("insert: missing table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert: missing columns")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert: missing values")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES ")

	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ") + ")"
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values, want %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rowPlaceholder)
		args = append(args, row...)
	}

	if b.suffix != "" {
		sb.WriteString(" ")
		sb.WriteString(b.suffix)
	}

	return rewritePlaceholders(sb.String()), args, nil
}

type UpdateBuilder struct {
	table string
	sets  []Condition
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Condition{expr: column + " = ?", args: []any{value}})
	return b
}

// SetExpr assigns a raw expression, e.g. SetExpr("updated_at", "now()").
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, Condition{expr: column + " = " + expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("update: missing table")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update: missing set clauses")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update: refusing to update without where")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("UPDATE ")
	sb.WriteString(b.table)
	sb.WriteString(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(set.expr)
		args = append(args, set.args...)
	}

	args = appendWhere(&sb, b.where, args)

	return rewritePlaceholders(sb.String()), args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("delete: missing table")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete: refusing to delete without where")
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("DELETE FROM ")
	sb.WriteString(b.table)
	args = appendWhere(&sb, b.where, args)

	return rewritePlaceholders(sb.String()), args, nil
}

func appendWhere(sb *strings.Builder, conds []Condition, args []any) []any {
	if len(conds) == 0 {
		return args
	}
	sb.WriteString(" WHERE ")
	for i, cond := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(cond.expr)
		args = append(args, cond.args...)
	}
	return args
}

// rewritePlaceholders converts ? markers to $1..$n.
func rewritePlaceholders(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			sb.WriteByte(query[i])
			continue
		}
		n++
		fmt.Fprintf(&sb, "$%d", n)
	}
	return sb.String()
}
