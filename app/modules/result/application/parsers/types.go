package parsers

import "errors"

var (
	// ErrUnsupportedFile is returned for extensions other than csv, xlsx and xls.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrMalformedSheet is returned when a sheet has no usable header or rows.
	ErrMalformedSheet = errors.New("malformed results sheet")
)

// ResultRow is one player line of a results export. Score fields are nil
// when the cell is blank, which is how DNF rows usually arrive.
type ResultRow struct {
	Line               int
	Division           string
	Position           string
	PositionRaw        *float64
	Name               string
	Username           string
	PDGANumber         *int64
	EventRelativeScore *int
	EventTotalScore    *int
	RoundRelativeScore *int
	RoundTotalScore    *int
}

// ResultSheet is the parsed content of one file.
type ResultSheet struct {
	Rows []ResultRow
	// DroppedColumns lists the per-hole columns that were ignored.
	DroppedColumns []string
}
