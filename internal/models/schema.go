package models

type Column struct {
	Name     string `json:"name"`
	DataType string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type ForeignKey struct {
	ConstraintName string `json:"constraint_name"`
	FromColumn     string `json:"column"`
	ToTable        string `json:"references_table"`
	ToColumn       string `json:"references_column"`
}

// Table is the full descriptor for one reflected table. It is re-derived
// from the live database catalog on every resolution, never declared
// statically.
type Table struct {
	Name        string       `json:"table_name"`
	Columns     []Column     `json:"columns"`
	PrimaryKeys []string     `json:"primary_keys"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}

// HasColumn reports whether name is a reflected column of the table.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// PrimaryKey returns the first declared primary key column. Identity
// lookups use only the first column of a composite key; the remaining
// columns are ignored.
func (t *Table) PrimaryKey() (string, bool) {
	if len(t.PrimaryKeys) == 0 {
		return "", false
	}
	return t.PrimaryKeys[0], true
}

type Relationship struct {
	FromTable string
	ToTable   string
	Type      string // "||--o{", "||--||", etc.
}
