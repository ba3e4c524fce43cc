// Package querybuilder assembles the parameterized SQL used by the
// postgres repositories. Fragments carry '?' markers and their arguments;
// placeholders are numbered once at render time so fragments compose in
// any order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type fragment struct {
	sql  string
	args []any
}

// Condition is a WHERE fragment. Conditions combine with AND.
type Condition fragment

func Eq(column string, value any) Condition {
	return Condition{sql: column + " = ?", args: []any{value}}
}

func IsNull(column string) Condition {
	return Condition{sql: column + " IS NULL"}
}

func render(buf *strings.Builder, args *[]any, f fragment) {
	need := strings.Count(f.sql, "?")
	if need != len(f.args) {
		// Mismatches surface as broken SQL in tests rather than silently
		// shifting later placeholders.
		buf.WriteString(f.sql)
		*args = append(*args, f.args...)
		return
	}

	next := 0
	for i := 0; i < len(f.sql); i++ {
		if f.sql[i] != '?' {
			buf.WriteByte(f.sql[i])
			continue
		}
		*args = append(*args, f.args[next])
		next++
		buf.WriteString("$" + strconv.Itoa(len(*args)))
	}
}

func renderWhere(buf *strings.Builder, args *[]any, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		render(buf, args, fragment(c))
	}
}

// SelectBuilder renders a single-table SELECT.
type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	args := make([]any, 0, len(b.where))
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	renderWhere(&buf, &args, b.where)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}
	return buf.String(), args, nil
}

// InsertBuilder renders a multi-row INSERT with an optional trailing
// clause (ON CONFLICT, RETURNING).
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
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	args := make([]any, 0, len(b.rows)*len(b.columns))
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	rowSQL := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(b.columns)), ", ") + ")"
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		render(&buf, &args, fragment{sql: rowSQL, args: row})
	}
	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.suffix)
	}
	return buf.String(), args, nil
}

// UpdateBuilder renders an UPDATE with plain and expression SET clauses.
type UpdateBuilder struct {
	table string
	sets  []fragment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, fragment{sql: column + " = ?", args: []any{value}})
	return b
}

// SetExpr assigns a raw SQL expression; '?' markers bind the given args.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, fragment{sql: column + " = " + expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var buf strings.Builder
	args := make([]any, 0, len(b.sets)+len(b.where))
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		render(&buf, &args, s)
	}
	renderWhere(&buf, &args, b.where)
	return buf.String(), args, nil
}
