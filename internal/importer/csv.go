package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser reads comma-separated files with a header row.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads every record. Rows may have different lengths.
func (p *CSVParser) Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("reading CSV: %w", err)
	}
	return tableFrom(records), nil
}

func tableFrom(records [][]string) Table {
	if len(records) == 0 {
		return Table{}
	}
	return Table{Header: records[0], Rows: records[1:]}
}
