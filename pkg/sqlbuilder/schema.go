package sqlbuilder

import (
	"context"
	"strconv"
	"strings"
)

// Column describes a table column.
type Column struct {
	Name     string
	Type     string
	Size     int
	Scale    int
	Nullable bool
	Unique   bool
	Default  string
	Extra    string
}

// ForeignKey describes a foreign key constraint.
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnUpdate  string
	OnDelete  string
}

// Common referential actions.
const (
	Cascade  = "CASCADE"
	Restrict = "RESTRICT"
	SetNull  = "SET NULL"
	NoAction = "NO ACTION"
)

// Schema builds CREATE TABLE statements.
type Schema struct {
	dialect     Dialect
	table       string
	ifNotExists bool
	defs        []string
	primaryKeys []string
	foreignKeys []ForeignKey
}

// NewSchema returns a schema builder for dialect d.
func NewSchema(d Dialect) *Schema {
	return &Schema{dialect: d}
}

// CreateTable starts a CREATE TABLE statement.
func (s *Schema) CreateTable(name string, ifNotExists bool) *Schema {
	s.table = name
	s.ifNotExists = ifNotExists
	s.defs = nil
	s.primaryKeys = nil
	s.foreignKeys = nil
	return s
}

// Identity adds an auto-generated primary key column. typ is one of
// "smallint", "int" or "bigint".
func (s *Schema) Identity(name, typ string) *Schema {
	col := s.dialect.Quote(name)
	switch s.dialect {
	case MySQL:
		s.defs = append(s.defs, col+" "+strings.ToUpper(typ)+" AUTO_INCREMENT NOT NULL")
		s.primaryKeys = append(s.primaryKeys, name)
	case Postgres:
		serial := "SERIAL"
		switch strings.ToLower(typ) {
		case "smallint":
			serial = "SMALLSERIAL"
		case "bigint":
			serial = "BIGSERIAL"
		}
		s.defs = append(s.defs, col+" "+serial)
		s.primaryKeys = append(s.primaryKeys, name)
	default:
		s.defs = append(s.defs, col+" INTEGER PRIMARY KEY")
	}
	return s
}

// Column adds a column definition.
func (s *Schema) Column(c Column) *Schema {
	var b strings.Builder
	b.WriteString(s.dialect.Quote(c.Name))
	b.WriteString(" ")
	b.WriteString(s.columnType(c))
	if c.Nullable {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.Extra != "" {
		b.WriteString(" ")
		b.WriteString(c.Extra)
	}
	s.defs = append(s.defs, b.String())
	return s
}

// String adds a VARCHAR column.
func (s *Schema) String(name string, size int, nullable bool) *Schema {
	return s.Column(Column{Name: name, Type: "varchar", Size: size, Nullable: nullable})
}

// Int adds an INT column.
func (s *Schema) Int(name string, size int, nullable bool) *Schema {
	return s.Column(Column{Name: name, Type: "int", Size: size, Nullable: nullable})
}

// BigInt adds a BIGINT column.
func (s *Schema) BigInt(name string, nullable bool) *Schema {
	return s.Column(Column{Name: name, Type: "bigint", Nullable: nullable})
}

// Text adds a TEXT column.
func (s *Schema) Text(name string, nullable bool) *Schema {
	return s.Column(Column{Name: name, Type: "text", Nullable: nullable})
}

// DateTime adds a date and time column.
func (s *Schema) DateTime(name string, nullable bool) *Schema {
	return s.Column(Column{Name: name, Type: "datetime", Nullable: nullable})
}

// Timestamps adds created_at and updated_at columns defaulting to the
// current time. MySQL also refreshes updated_at on every update.
func (s *Schema) Timestamps() *Schema {
	s.Column(Column{Name: "created_at", Type: "datetime", Default: "CURRENT_TIMESTAMP"})
	updated := Column{Name: "updated_at", Type: "datetime", Default: "CURRENT_TIMESTAMP"}
	if s.dialect == MySQL {
		updated.Extra = "ON UPDATE CURRENT_TIMESTAMP"
	}
	return s.Column(updated)
}

// PrimaryKey declares a (composite) primary key.
func (s *Schema) PrimaryKey(cols ...string) *Schema {
	s.primaryKeys = append(s.primaryKeys, cols...)
	return s
}

// ForeignKey adds a foreign key constraint.
func (s *Schema) ForeignKey(fk ForeignKey) *Schema {
	s.foreignKeys = append(s.foreignKeys, fk)
	return s
}

// SQL renders the CREATE TABLE statement.
func (s *Schema) SQL() string {
	var b strings.Builder

	b.WriteString("CREATE TABLE ")
	if s.ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(s.dialect.Quote(s.table))
	b.WriteString(" (\n")

	defs := append([]string(nil), s.defs...)
	if len(s.primaryKeys) > 0 {
		defs = append(defs, "PRIMARY KEY ("+s.quoteAll(s.primaryKeys)+")")
	}
	for _, fk := range s.foreignKeys {
		defs = append(defs, s.foreignKeySQL(fk))
	}
	b.WriteString("  ")
	b.WriteString(strings.Join(defs, ",\n  "))
	b.WriteString("\n)")

	if s.dialect == MySQL {
		b.WriteString(" ENGINE=InnoDB DEFAULT CHARSET=utf8")
	}

	return b.String()
}

// Commit executes the statement.
func (s *Schema) Commit(ctx context.Context, db Runner) error {
	if s.table == "" {
		return ErrNoTable
	}
	if len(s.defs) == 0 {
		return ErrNoColumns
	}
	_, err := db.ExecContext(ctx, s.SQL())
	return err
}

func (s *Schema) columnType(c Column) string {
	typ := strings.ToUpper(c.Type)
	if s.dialect == Postgres && typ == "DATETIME" {
		typ = "TIMESTAMP"
	}
	if c.Size <= 0 || !s.sized(typ) {
		return typ
	}
	size := strconv.Itoa(c.Size)
	if c.Scale > 0 {
		size += "," + strconv.Itoa(c.Scale)
	}
	return typ + "(" + size + ")"
}

func (s *Schema) sized(typ string) bool {
	if s.dialect != Postgres {
		return true
	}
	switch typ {
	case "BIT", "CHAR", "VARCHAR", "DECIMAL":
		return true
	}
	return false
}

func (s *Schema) foreignKeySQL(fk ForeignKey) string {
	var b strings.Builder
	if fk.Name != "" {
		b.WriteString("CONSTRAINT ")
		b.WriteString(s.dialect.Quote(fk.Name))
		b.WriteString(" ")
	}
	b.WriteString("FOREIGN KEY (")
	b.WriteString(s.dialect.Quote(fk.Column))
	b.WriteString(") REFERENCES ")
	b.WriteString(s.dialect.Quote(fk.RefTable))
	b.WriteString(" (")
	b.WriteString(s.dialect.Quote(fk.RefColumn))
	b.WriteString(")")
	if fk.OnUpdate != "" {
		b.WriteString(" ON UPDATE ")
		b.WriteString(fk.OnUpdate)
	}
	if fk.OnDelete != "" {
		b.WriteString(" ON DELETE ")
		b.WriteString(fk.OnDelete)
	}
	return b.String()
}

func (s *Schema) quoteAll(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = s.dialect.Quote(c)
	}
	return strings.Join(quoted, ", ")
}
