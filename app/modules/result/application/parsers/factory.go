package parsers

import (
	"fmt"
	"strings"
)

// Parser turns an uploaded results export into rows.
type Parser interface {
	Parse(data []byte) (*ResultSheet, error)
}

// ParserFactory defines the interface for creating parsers
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension
type Factory struct{}

// NewFactory creates a new parser factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(getFileExtension(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}

func getFileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return filename[idx:]
}
