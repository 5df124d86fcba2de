package parsers

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	scoredomain "github.com/Black-And-White-Club/frolf-stats/app/modules/score/domain"
)

var (
	divisionNames    = []string{"division", "div", "class"}
	positionNames    = []string{"position", "place", "pos"}
	positionRawNames = []string{"position_raw", "raw position"}
	nameNames        = []string{"name", "player", "player name"}
	usernameNames    = []string{"username", "user", "udisc username"}
	pdgaNames        = []string{"pdga_number", "pdga", "pdga #"}
	eventRelNames    = []string{"event_relative_score", "event +/-"}
	eventTotalNames  = []string{"event_total_score", "event total"}
	roundRelNames    = []string{"round_relative_score", "+/-", "relative"}
	roundTotalNames  = []string{"round_total_score", "total", "round total"}
)

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// findColumn searches for a column by multiple possible names (case-insensitive).
// Spaces, underscores and hyphens are ignored.
func findColumn(header []string, possibleNames []string) int {
	for _, name := range possibleNames {
		want := normalizeHeader(name)
		for i, col := range header {
			if normalizeHeader(col) == want {
				return i
			}
		}
	}
	return -1
}

// isHoleColumn matches hole_1, hole 1 and hole1 headers.
func isHoleColumn(col string) bool {
	norm := normalizeHeader(col)
	if !strings.HasPrefix(norm, "hole") {
		return false
	}
	_, err := strconv.Atoi(strings.TrimPrefix(norm, "hole"))
	return err == nil
}

// preprocessCSVData strips a UTF-8 BOM, normalizes line endings and
// auto-detects the delimiter from the first lines.
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(data) == 0 {
		return "", ',', fmt.Errorf("%w: empty CSV data", ErrMalformedSheet)
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	lines := strings.Split(cleaned, "\n")
	sampleSize := min(5, len(lines))

	commaCount, tabCount := 0, 0
	for _, line := range lines[:sampleSize] {
		commaCount += strings.Count(line, ",")
		tabCount += strings.Count(line, "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter, nil
}

// buildSheet maps header-named columns of records into rows. The first
// non-empty record is the header.
func buildSheet(records [][]string) (*ResultSheet, error) {
	headerIdx := -1
	for i, rec := range records {
		if !isBlankRecord(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedSheet)
	}
	header := records[headerIdx]

	cols := struct {
		division, position, positionRaw, name, username, pdga int
		eventRel, eventTotal, roundRel, roundTotal            int
	}{
		division:    findColumn(header, divisionNames),
		position:    findColumn(header, positionNames),
		positionRaw: findColumn(header, positionRawNames),
		name:        findColumn(header, nameNames),
		username:    findColumn(header, usernameNames),
		pdga:        findColumn(header, pdgaNames),
		eventRel:    findColumn(header, eventRelNames),
		eventTotal:  findColumn(header, eventTotalNames),
		roundRel:    findColumn(header, roundRelNames),
		roundTotal:  findColumn(header, roundTotalNames),
	}
	if cols.name < 0 && cols.username < 0 {
		return nil, fmt.Errorf("%w: missing name or username column", ErrMalformedSheet)
	}
	if cols.position < 0 && cols.positionRaw < 0 {
		return nil, fmt.Errorf("%w: missing position column", ErrMalformedSheet)
	}

	sheet := &ResultSheet{}
	for _, col := range header {
		if isHoleColumn(col) {
			sheet.DroppedColumns = append(sheet.DroppedColumns, strings.TrimSpace(col))
		}
	}

	for i := headerIdx + 1; i < len(records); i++ {
		rec := records[i]
		if isBlankRecord(rec) {
			continue
		}

		row := ResultRow{
			Line:               i + 1,
			Division:           cell(rec, cols.division),
			Name:               cell(rec, cols.name),
			Username:           cell(rec, cols.username),
			PDGANumber:         int64Cell(rec, cols.pdga),
			EventRelativeScore: intCell(rec, cols.eventRel),
			EventTotalScore:    intCell(rec, cols.eventTotal),
			RoundRelativeScore: intCell(rec, cols.roundRel),
			RoundTotalScore:    intCell(rec, cols.roundTotal),
		}

		rawText := cell(rec, cols.positionRaw)
		if cols.positionRaw < 0 {
			rawText = cell(rec, cols.position)
		}
		row.PositionRaw = scoredomain.ParsePosition(rawText)
		if row.PositionRaw != nil {
			row.Position = cell(rec, cols.position)
			if row.Position == "" {
				row.Position = strconv.FormatFloat(*row.PositionRaw, 'f', -1, 64)
			}
		}

		if row.Name == "" {
			row.Name = row.Username
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("%w: no player rows", ErrMalformedSheet)
	}
	return sheet, nil
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// intCell accepts "3", "+3", "-2", "E" (even) and "3.0".
func intCell(rec []string, idx int) *int {
	v := cell(rec, idx)
	if v == "" {
		return nil
	}
	if strings.EqualFold(v, "E") {
		zero := 0
		return &zero
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(v, "+"), 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func int64Cell(rec []string, idx int) *int64 {
	v := cell(rec, idx)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return nil
	}
	n := int64(f)
	return &n
}
