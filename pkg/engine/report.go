package engine

import (
	"fmt"
	"strings"
	"sync"
)

// SourceSummary records how many rows one input contributed.
type SourceSummary struct {
	Source string
	Rows   int
}

// Report accumulates flattened rows from any number of documents. Rows are only appended.
type Report struct {
	Schema  *Schema
	records []FlatRecord
	sources []SourceSummary
	mu      sync.RWMutex
}

// NewReport creates an empty report for schema
func NewReport(schema *Schema) *Report {
	return &Report{
		Schema:  schema,
		records: make([]FlatRecord, 0),
	}
}

// AddDocument flattens doc and appends its rows. It returns the number of rows added.
func (r *Report) AddDocument(doc ScanDocument) int {
	rows := Flatten(r.Schema, doc)
	r.AddRecords(doc.Source, rows)
	return len(rows)
}

// AddRecords appends rows produced from source.
func (r *Report) AddRecords(source string, rows []FlatRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rows...)
	r.sources = append(r.sources, SourceSummary{Source: source, Rows: len(rows)})
}

func (r *Report) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Records returns the accumulated rows in insertion order.
func (r *Report) Records() []FlatRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]FlatRecord, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Report) Sources() []SourceSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]SourceSummary, len(r.sources))
	copy(out, r.sources)
	return out
}

// Summary returns a short text overview of the accumulated sources.
func (r *Report) Summary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d findings from %d report(s):\n", len(r.records), len(r.sources)))
	for _, s := range r.sources {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", s.Source, s.Rows))
	}
	return sb.String()
}
