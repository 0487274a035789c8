// Package table is a small schema-driven CRUD layer over a single-file SQLite
// database. Callers describe tables with a Spec and then insert, select,
// update and delete rows by table name without writing SQL themselves.
//
// Every table and column identifier passes through Canonical, so names are
// case-insensitive everywhere. Values are always bound as parameters. Raw
// predicate and ordering expressions are trusted caller input.
package table

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
	datatypePattern   = regexp.MustCompile(`^[A-Z][A-Z0-9_ (),]*$`)
)

// Canonical returns the canonical form of a table or column identifier.
func Canonical(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func checkIdentifier(kind, name string) (string, error) {
	c := Canonical(name)
	if !identifierPattern.MatchString(c) {
		return "", fmt.Errorf("%w: invalid %s identifier %q", ErrSchema, kind, name)
	}
	return c, nil
}

func quote(canonical string) string {
	return `"` + canonical + `"`
}

// Column is one column declaration. Modifiers are emitted verbatim after the
// datatype, e.g. "NOT NULL" or "DEFAULT ''".
type Column struct {
	Name      string
	Type      string
	Modifiers []string
}

// ForeignKey links Column to RefTable.RefColumn.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	// OnDelete is an optional referential action such as "CASCADE".
	OnDelete string
}

// Spec is a validated table description. Build one with NewSpec.
type Spec struct {
	Name          string
	Columns       []Column
	PrimaryKey    string
	AutoIncrement bool
	ForeignKeys   []ForeignKey
}

// Builder accumulates a Spec. The first error encountered is kept and
// reported by Build.
type Builder struct {
	spec Spec
	seen map[string]bool
	err  error
}

// NewSpec starts a table description.
func NewSpec(name string) *Builder {
	b := &Builder{seen: make(map[string]bool)}
	b.spec.Name, b.err = checkIdentifier("table", name)
	return b
}

// Column declares a column.
func (b *Builder) Column(name, datatype string, modifiers ...string) *Builder {
	if b.err != nil {
		return b
	}
	col, err := checkIdentifier("column", name)
	if err != nil {
		b.err = err
		return b
	}
	if b.seen[col] {
		b.err = fmt.Errorf("%w: duplicate column %s in %s", ErrSchema, col, b.spec.Name)
		return b
	}
	dt := strings.ToUpper(strings.TrimSpace(datatype))
	if !datatypePattern.MatchString(dt) {
		b.err = fmt.Errorf("%w: invalid datatype %q for column %s", ErrSchema, datatype, col)
		return b
	}
	for _, m := range modifiers {
		if strings.ContainsAny(m, ";") {
			b.err = fmt.Errorf("%w: invalid modifier %q for column %s", ErrSchema, m, col)
			return b
		}
	}
	b.seen[col] = true
	b.spec.Columns = append(b.spec.Columns, Column{Name: col, Type: dt, Modifiers: modifiers})
	return b
}

// PrimaryKey marks col as the primary key.
func (b *Builder) PrimaryKey(col string) *Builder {
	if b.err != nil {
		return b
	}
	b.spec.PrimaryKey, b.err = checkIdentifier("column", col)
	return b
}

// AutoIncrement makes an INTEGER primary key monotonically increasing.
func (b *Builder) AutoIncrement() *Builder {
	b.spec.AutoIncrement = true
	return b
}

// ForeignKey adds a reference. An empty RefColumn means ID.
func (b *Builder) ForeignKey(fk ForeignKey) *Builder {
	if b.err != nil {
		return b
	}
	var err error
	if fk.Column, err = checkIdentifier("column", fk.Column); err != nil {
		b.err = err
		return b
	}
	if fk.RefTable, err = checkIdentifier("table", fk.RefTable); err != nil {
		b.err = err
		return b
	}
	if fk.RefColumn == "" {
		fk.RefColumn = "ID"
	}
	if fk.RefColumn, err = checkIdentifier("column", fk.RefColumn); err != nil {
		b.err = err
		return b
	}
	fk.OnDelete = strings.ToUpper(strings.TrimSpace(fk.OnDelete))
	switch fk.OnDelete {
	case "", "CASCADE", "SET NULL", "SET DEFAULT", "RESTRICT", "NO ACTION":
	default:
		b.err = fmt.Errorf("%w: invalid ON DELETE action %q", ErrSchema, fk.OnDelete)
		return b
	}
	b.spec.ForeignKeys = append(b.spec.ForeignKeys, fk)
	return b
}

// Build validates and returns the Spec.
func (b *Builder) Build() (Spec, error) {
	if b.err != nil {
		return Spec{}, b.err
	}
	s := b.spec
	if len(s.Columns) == 0 {
		return Spec{}, fmt.Errorf("%w: table %s has no columns", ErrSchema, s.Name)
	}
	if s.PrimaryKey != "" && !b.seen[s.PrimaryKey] {
		return Spec{}, fmt.Errorf("%w: primary key %s is not a column of %s", ErrSchema, s.PrimaryKey, s.Name)
	}
	if s.AutoIncrement {
		if s.PrimaryKey == "" {
			return Spec{}, fmt.Errorf("%w: AUTOINCREMENT requires a primary key on %s", ErrSchema, s.Name)
		}
		if s.column(s.PrimaryKey).Type != "INTEGER" {
			return Spec{}, fmt.Errorf("%w: AUTOINCREMENT requires an INTEGER primary key on %s", ErrSchema, s.Name)
		}
	}
	for _, fk := range s.ForeignKeys {
		if !b.seen[fk.Column] {
			return Spec{}, fmt.Errorf("%w: foreign key column %s is not a column of %s", ErrSchema, fk.Column, s.Name)
		}
		if fk.RefTable == s.Name && !b.seen[fk.RefColumn] {
			return Spec{}, fmt.Errorf("%w: self reference to unknown column %s", ErrSchema, fk.RefColumn)
		}
	}
	return s, nil
}

// MustBuild is like Build but panics on error. It is meant for schemas
// declared at package level.
func (b *Builder) MustBuild() Spec {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// rebuild runs s through the Builder so a Spec assembled as a literal gets
// the same identifier checks and canonical names as one from NewSpec.
func (s Spec) rebuild() (Spec, error) {
	b := NewSpec(s.Name)
	for _, c := range s.Columns {
		b.Column(c.Name, c.Type, c.Modifiers...)
	}
	if s.PrimaryKey != "" {
		b.PrimaryKey(s.PrimaryKey)
	}
	if s.AutoIncrement {
		b.AutoIncrement()
	}
	for _, fk := range s.ForeignKeys {
		b.ForeignKey(fk)
	}
	return b.Build()
}

func (s Spec) column(name string) Column {
	for _, c := range s.Columns {
		if c.Name == name {
			return c
		}
	}
	return Column{}
}

// createStatement renders the CREATE TABLE statement for a validated Spec.
func (s Spec) createStatement() string {
	var defs []string
	for _, c := range s.Columns {
		parts := []string{quote(c.Name), c.Type}
		if c.Name == s.PrimaryKey {
			parts = append(parts, "NOT NULL UNIQUE PRIMARY KEY")
			if s.AutoIncrement {
				parts = append(parts, "AUTOINCREMENT")
			}
		}
		parts = append(parts, c.Modifiers...)
		defs = append(defs, strings.Join(parts, " "))
	}
	for _, fk := range s.ForeignKeys {
		def := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", quote(fk.Column), quote(fk.RefTable), quote(fk.RefColumn))
		if fk.OnDelete != "" {
			def += " ON DELETE " + fk.OnDelete
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quote(s.Name), strings.Join(defs, ",\n\t"))
}
