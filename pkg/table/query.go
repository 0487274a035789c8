package table

import (
	"fmt"
	"sort"
	"strings"
)

type whereKind int

const (
	whereAll whereKind = iota
	whereEquals
	whereRaw
)

// Where selects rows. The zero value matches every row.
type Where struct {
	kind whereKind
	eq   Row
	expr string
	args []any
}

// Equals matches rows whose columns equal every value in r. A nil value
// matches NULL. An empty r matches every row.
func Equals(r Row) Where {
	if len(r) == 0 {
		return Where{}
	}
	return Where{kind: whereEquals, eq: r}
}

// Raw matches rows with a free-form SQL expression. Placeholders in expr are
// bound to args.
func Raw(expr string, args ...any) Where {
	if strings.TrimSpace(expr) == "" {
		return Where{}
	}
	return Where{kind: whereRaw, expr: expr, args: args}
}

func (w Where) clause() (string, []any, error) {
	switch w.kind {
	case whereEquals:
		cols, err := sortedColumns(w.eq)
		if err != nil {
			return "", nil, err
		}
		conds := make([]string, 0, len(cols))
		args := make([]any, 0, len(cols))
		for _, c := range cols {
			v := w.eq[c.key]
			if v == nil {
				conds = append(conds, quote(c.name)+" IS NULL")
				continue
			}
			conds = append(conds, quote(c.name)+" = ?")
			args = append(args, v)
		}
		return " WHERE " + strings.Join(conds, " AND "), args, nil
	case whereRaw:
		return " WHERE " + w.expr, w.args, nil
	default:
		return "", nil, nil
	}
}

// Term is one ordering key.
type Term struct {
	column string
	desc   bool
}

// Asc orders by col ascending.
func Asc(col string) Term { return Term{column: col} }

// Desc orders by col descending.
func Desc(col string) Term { return Term{column: col, desc: true} }

// Order is either a list of terms or a raw ORDER BY expression. The zero
// value leaves the order unspecified.
type Order struct {
	terms []Term
	raw   string
}

// By orders by the given terms, first term most significant.
func By(terms ...Term) Order { return Order{terms: terms} }

// OrderRaw orders by a free-form expression.
func OrderRaw(expr string) Order { return Order{raw: strings.TrimSpace(expr)} }

func (o Order) clause() (string, error) {
	if o.raw != "" {
		return " ORDER BY " + o.raw, nil
	}
	if len(o.terms) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(o.terms))
	for _, t := range o.terms {
		col, err := checkIdentifier("column", t.column)
		if err != nil {
			return "", err
		}
		dir := "ASC"
		if t.desc {
			dir = "DESC"
		}
		parts = append(parts, quote(col)+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// Query describes a select. Nil Columns selects every column. Limit <= 0
// means no limit.
type Query struct {
	Columns []string
	Where   Where
	OrderBy Order
	Limit   int
	Offset  int
}

type namedColumn struct {
	key  string
	name string
}

// sortedColumns canonicalizes the keys of r in a stable order so that
// generated statements are deterministic.
func sortedColumns(r Row) ([]namedColumn, error) {
	cols := make([]namedColumn, 0, len(r))
	seen := make(map[string]bool, len(r))
	for k := range r {
		name, err := checkIdentifier("column", k)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: column %s given twice", ErrSchema, name)
		}
		seen[name] = true
		cols = append(cols, namedColumn{key: k, name: name})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].name < cols[j].name })
	return cols, nil
}

func columnList(cols []string) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		name, err := checkIdentifier("column", c)
		if err != nil {
			return "", err
		}
		out = append(out, quote(name))
	}
	return strings.Join(out, ", "), nil
}
