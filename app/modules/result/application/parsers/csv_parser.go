package parsers

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVParser parses CSV result exports
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads comma or tab separated data.
func (p *CSVParser) Parse(data []byte) (*ResultSheet, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return buildSheet(records)
}
