package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Conn is the subset of *sql.DB, *sql.Conn and *sql.Tx the engine needs.
// Statements issued through a *sql.DB commit immediately; pass a *sql.Tx to
// group several operations atomically.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TableExists reports whether a table named name exists.
func TableExists(ctx context.Context, conn Conn, name string) (bool, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return false, err
	}
	var n int
	err = conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND UPPER(name) = ?`, tbl).Scan(&n)
	if err != nil {
		return false, classify("table exists", err)
	}
	return n > 0, nil
}

func columnExists(ctx context.Context, conn Conn, tbl, col string) (bool, error) {
	var n int
	err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE UPPER(name) = ?`, tbl, col).Scan(&n)
	if err != nil {
		return false, classify("column exists", err)
	}
	return n > 0, nil
}

// CreateTable creates the table described by spec if it does not exist.
// Every foreign key must point at an existing table and column, or at a
// column of spec itself.
func CreateTable(ctx context.Context, conn Conn, spec Spec) error {
	spec, err := spec.rebuild()
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	for _, fk := range spec.ForeignKeys {
		if fk.RefTable == spec.Name {
			continue
		}
		ok, err := TableExists(ctx, conn, fk.RefTable)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("create table %s: %w: referenced table %s does not exist", spec.Name, ErrSchema, fk.RefTable)
		}
		ok, err = columnExists(ctx, conn, fk.RefTable, fk.RefColumn)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("create table %s: %w: referenced column %s.%s does not exist", spec.Name, ErrSchema, fk.RefTable, fk.RefColumn)
		}
	}
	if _, err := conn.ExecContext(ctx, spec.createStatement()); err != nil {
		return classify("create table "+spec.Name, err)
	}
	return nil
}

// DropTable removes a table. Dropping a table that does not exist is a no-op.
func DropTable(ctx context.Context, conn Conn, name string) error {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return err
	}
	if _, err := conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(tbl)); err != nil {
		return classify("drop table "+tbl, err)
	}
	return nil
}

// SingleInsert inserts one row and returns its row id.
func SingleInsert(ctx context.Context, conn Conn, name string, row Row) (int64, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return 0, err
	}
	if len(row) == 0 {
		return 0, fmt.Errorf("insert into %s: %w: empty row", tbl, ErrSchema)
	}
	cols, err := sortedColumns(row)
	if err != nil {
		return 0, err
	}
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = quote(c.name)
		marks[i] = "?"
		args[i] = row[c.key]
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(tbl), strings.Join(names, ", "), strings.Join(marks, ", "))
	res, err := conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, classify("insert into "+tbl, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %s: last insert id: %w", tbl, err)
	}
	return id, nil
}

// Select returns every matching row. No match yields an empty slice.
func Select(ctx context.Context, conn Conn, name string, q Query) ([]Row, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return nil, err
	}
	cols, err := columnList(q.Columns)
	if err != nil {
		return nil, err
	}
	where, args, err := q.Where.clause()
	if err != nil {
		return nil, err
	}
	order, err := q.OrderBy.clause()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s%s", cols, quote(tbl), where, order)
	switch {
	case q.Limit > 0:
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
		if q.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, q.Offset)
		}
	case q.Offset > 0:
		sb.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, q.Offset)
	}

	rows, err := conn.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify("select from "+tbl, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select from %s: columns: %w", tbl, err)
	}
	out := []Row{}
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select from %s: scan: %w", tbl, err)
		}
		r := make(Row, len(names))
		for i, n := range names {
			r[Canonical(n)] = vals[i]
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("select from "+tbl, err)
	}
	return out, nil
}

// Count returns the number of matching rows.
func Count(ctx context.Context, conn Conn, name string, where Where) (int64, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return 0, err
	}
	clause, args, err := where.clause()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(tbl)+clause, args...).Scan(&n); err != nil {
		return 0, classify("count "+tbl, err)
	}
	return n, nil
}

// Update sets the columns in set on every matching row and returns the number
// of rows affected.
func Update(ctx context.Context, conn Conn, name string, set Row, where Where) (int64, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return 0, err
	}
	if len(set) == 0 {
		return 0, fmt.Errorf("update %s: %w: nothing to set", tbl, ErrSchema)
	}
	cols, err := sortedColumns(set)
	if err != nil {
		return 0, err
	}
	assigns := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		assigns[i] = quote(c.name) + " = ?"
		args = append(args, set[c.key])
	}
	clause, whereArgs, err := where.clause()
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)
	res, err := conn.ExecContext(ctx, "UPDATE "+quote(tbl)+" SET "+strings.Join(assigns, ", ")+clause, args...)
	if err != nil {
		return 0, classify("update "+tbl, err)
	}
	return res.RowsAffected()
}

// Delete removes every matching row and returns the number deleted.
func Delete(ctx context.Context, conn Conn, name string, where Where) (int64, error) {
	tbl, err := checkIdentifier("table", name)
	if err != nil {
		return 0, err
	}
	clause, args, err := where.clause()
	if err != nil {
		return 0, err
	}
	res, err := conn.ExecContext(ctx, "DELETE FROM "+quote(tbl)+clause, args...)
	if err != nil {
		return 0, classify("delete from "+tbl, err)
	}
	return res.RowsAffected()
}
