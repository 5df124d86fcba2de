package parsers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXParser parses Excel result exports. Only the first sheet is read.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first worksheet of an xlsx workbook.
func (p *XLSXParser) Parse(data []byte) (*ResultSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedSheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return buildSheet(rows)
}
