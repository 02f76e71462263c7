package engine

// Field is a named value read from a report: a host property or a finding child element.
type Field struct {
	Name  string
	Value string
}

// ScanDocument is a parsed report, independent of the scanner's file format.
type ScanDocument struct {
	Source string
	Hosts  []HostEntry
}

// HostEntry carries host-level properties and the findings reported against the host.
type HostEntry struct {
	Name       string
	Properties []Field
	Findings   []FindingEntry
}

// FindingEntry is a single plugin result on one port.
type FindingEntry struct {
	Port       string
	PluginName string
	PluginID   string
	Fields     []Field
}

// FindingCount returns the number of findings across all hosts.
func (d ScanDocument) FindingCount() int {
	n := 0
	for _, h := range d.Hosts {
		n += len(h.Findings)
	}
	return n
}

// FlatRecord is one output row: a value for every column of its schema.
type FlatRecord struct {
	schema *Schema
	values []string
}

// Get returns the value stored under column, or "" for unknown columns.
func (r FlatRecord) Get(column string) string {
	if r.schema == nil {
		return ""
	}
	i, ok := r.schema.columnIndex(column)
	if !ok {
		return ""
	}
	return r.values[i]
}

// Values returns a copy of the row in schema column order.
func (r FlatRecord) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Map returns the row keyed by column label.
func (r FlatRecord) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	if r.schema == nil {
		return out
	}
	for i, m := range r.schema.mappings {
		out[m.Column] = r.values[i]
	}
	return out
}
