package sqlbuilder

import (
	"fmt"
	"slices"
)

// FieldMap maps external (caller-facing) field names to storage columns for
// one entity, e.g. numEmployees -> num_employees.
//
// Fields that are columns under their own name are declared as columns and
// need no alias. The zero FieldMap is valid: every field resolves to itself.
type FieldMap struct {
	columns []string
	aliases map[string]string
}

// NewFieldMap declares the columns of an entity and the external aliases
// pointing at them. An alias whose target is not one of columns is rejected.
func NewFieldMap(columns []string, aliases map[string]string) (FieldMap, error) {
	for field, column := range aliases {
		if !slices.Contains(columns, column) {
			return FieldMap{}, fmt.Errorf("sqlbuilder: field %q maps to undeclared column %q", field, column)
		}
	}
	return FieldMap{columns: slices.Clone(columns), aliases: aliases}, nil
}

// MustFieldMap is like NewFieldMap but panics on an invalid declaration. It
// is meant for package-level entity declarations.
func MustFieldMap(columns []string, aliases map[string]string) FieldMap {
	m, err := NewFieldMap(columns, aliases)
	if err != nil {
		panic(err)
	}
	return m
}

// Column resolves field to its storage column, falling back to field itself.
func (m FieldMap) Column(field string) string {
	if column, ok := m.aliases[field]; ok {
		return column
	}
	return field
}

// Has reports whether field is an alias or a declared column that is not
// hidden behind an alias (with numEmployees -> num_employees declared,
// "num_employees" itself is not a field).
func (m FieldMap) Has(field string) bool {
	if _, ok := m.aliases[field]; ok {
		return true
	}
	if !slices.Contains(m.columns, field) {
		return false
	}
	for _, column := range m.aliases {
		if column == field {
			return false
		}
	}
	return true
}
