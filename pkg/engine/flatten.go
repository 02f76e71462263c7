package engine

// Flatten emits one FlatRecord per finding in doc, in host order and then finding order.
// Host properties seed every row of the host; finding attributes and fields are laid
// over them, so a finding value always wins over a host value for the same column.
func Flatten(schema *Schema, doc ScanDocument) []FlatRecord {
	portIdx := schema.mustIndex(FieldPort)
	nameIdx := schema.mustIndex(FieldPluginName)
	idIdx := schema.mustIndex(FieldPluginID)

	records := make([]FlatRecord, 0, doc.FindingCount())
	for _, host := range doc.Hosts {
		base := make([]string, schema.Len())
		overlay(schema, base, host.Properties)

		for _, f := range host.Findings {
			row := make([]string, len(base))
			copy(row, base)
			row[portIdx] = f.Port
			row[nameIdx] = f.PluginName
			row[idIdx] = f.PluginID
			overlay(schema, row, f.Fields)
			records = append(records, FlatRecord{schema: schema, values: row})
		}
	}
	return records
}

// overlay writes the cleaned value of every mapped field into row. Unmapped fields are skipped.
func overlay(schema *Schema, row []string, fields []Field) {
	for _, fld := range fields {
		i, ok := schema.index(fld.Name)
		if !ok {
			continue
		}
		row[i] = Clean(fld.Value)
	}
}
