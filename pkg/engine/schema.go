package engine

import (
	"fmt"
	"sync"
)

// Source fields that every finding carries as attributes rather than child elements.
const (
	FieldPort       = "port"
	FieldPluginName = "plugin_name"
	FieldPluginID   = "pluginID"
)

// Mapping binds one output column to the report field that feeds it.
type Mapping struct {
	Column string
	Field  string
}

// Schema is an ordered, read-only set of column mappings.
type Schema struct {
	mappings []Mapping
	byField  map[string]int
}

// NewSchema builds a schema from mappings in output order. Columns and fields must be unique.
func NewSchema(mappings ...Mapping) (*Schema, error) {
	s := &Schema{
		mappings: make([]Mapping, len(mappings)),
		byField:  make(map[string]int, len(mappings)),
	}
	columns := make(map[string]bool, len(mappings))
	for i, m := range mappings {
		if m.Column == "" || m.Field == "" {
			return nil, fmt.Errorf("mapping %d: column and field must be set", i)
		}
		if columns[m.Column] {
			return nil, fmt.Errorf("duplicate column %q", m.Column)
		}
		if _, ok := s.byField[m.Field]; ok {
			return nil, fmt.Errorf("duplicate field %q", m.Field)
		}
		columns[m.Column] = true
		s.byField[m.Field] = i
		s.mappings[i] = m
	}
	return s, nil
}

var (
	defaultSchema     *Schema
	defaultSchemaOnce sync.Once
)

// DefaultSchema returns the Nessus column layout. The same instance is shared process-wide.
func DefaultSchema() *Schema {
	defaultSchemaOnce.Do(func() {
		s, err := NewSchema(
			Mapping{Column: "CVSS Score", Field: "cvss_base_score"},
			Mapping{Column: "IP", Field: "host-ip"},
			Mapping{Column: "FQDN", Field: "host-fqdn"},
			Mapping{Column: "OS", Field: "operating-system"},
			Mapping{Column: "Port", Field: FieldPort},
			Mapping{Column: "Vulnerability", Field: FieldPluginName},
			Mapping{Column: "Risk", Field: "risk_factor"},
			Mapping{Column: "Description", Field: "description"},
			Mapping{Column: "Exploit Available", Field: "exploit_available"},
			Mapping{Column: "Proof", Field: "plugin_output"},
			Mapping{Column: "Solution", Field: "solution"},
			Mapping{Column: "See Also", Field: "see_also"},
			Mapping{Column: "CVE", Field: "cve"},
			Mapping{Column: "Plugin ID", Field: FieldPluginID},
		)
		if err != nil {
			panic(err)
		}
		defaultSchema = s
	})
	return defaultSchema
}

// Columns returns the output column labels in order.
func (s *Schema) Columns() []string {
	cols := make([]string, len(s.mappings))
	for i, m := range s.mappings {
		cols[i] = m.Column
	}
	return cols
}

// Len is the number of columns.
func (s *Schema) Len() int {
	return len(s.mappings)
}

// Column reports the output column fed by field.
func (s *Schema) Column(field string) (string, bool) {
	i, ok := s.byField[field]
	if !ok {
		return "", false
	}
	return s.mappings[i].Column, true
}

// MustColumn is Column for fields the caller knows are mapped. It panics otherwise.
func (s *Schema) MustColumn(field string) string {
	col, ok := s.Column(field)
	if !ok {
		panic(fmt.Sprintf("engine: field %q is not mapped to any column", field))
	}
	return col
}

func (s *Schema) index(field string) (int, bool) {
	i, ok := s.byField[field]
	return i, ok
}

func (s *Schema) columnIndex(column string) (int, bool) {
	for i, m := range s.mappings {
		if m.Column == column {
			return i, true
		}
	}
	return 0, false
}

func (s *Schema) mustIndex(field string) int {
	s.MustColumn(field)
	return s.byField[field]
}
