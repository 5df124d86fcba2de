package importer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/Black-And-White-Club/frolf-stats/app/modules/result/application/parsers"
	scoredomain "github.com/Black-And-White-Club/frolf-stats/app/modules/score/domain"
)

// PointsRow is one player's locally computed round points. Points is nil
// for unranked rows.
type PointsRow struct {
	Division string
	Position string
	Player   string
	Points   *float64
}

// LocalPoints parses a results export and allocates points per division
// the way the server does on import, without calling the API. Rows without
// a player or repeating one are dropped.
func LocalPoints(filename string, data []byte, maxPoints float64) ([]PointsRow, error) {
	parser, err := parsers.NewFactory().GetParser(filename)
	if err != nil {
		return nil, err
	}
	sheet, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(sheet.Rows))
	rows := make([]PointsRow, 0, len(sheet.Rows))
	entries := make([]scoredomain.FinishEntry, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		player := r.Username
		if player == "" {
			player = r.Name
		}
		if player == "" || seen[player] {
			continue
		}
		seen[player] = true
		entries = append(entries, scoredomain.FinishEntry{
			Division:    r.Division,
			PlayerID:    strconv.Itoa(len(rows)),
			PositionRaw: r.PositionRaw,
		})
		rows = append(rows, PointsRow{Division: r.Division, Position: r.Position, Player: player})
	}

	for _, s := range scoredomain.AllocateByDivision(entries, maxPoints) {
		i, _ := strconv.Atoi(s.PlayerID)
		p := s.Points
		rows[i].Points = &p
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Division != rows[j].Division {
			return rows[i].Division < rows[j].Division
		}
		pi, pj := rows[i].Points, rows[j].Points
		switch {
		case pi == nil || pj == nil:
			return pi != nil && pj == nil
		default:
			return *pi > *pj
		}
	})
	return rows, nil
}

// WritePoints prints rows as an aligned table.
func WritePoints(w io.Writer, rows []PointsRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DIVISION\tPOS\tPLAYER\tPOINTS")
	for _, r := range rows {
		pts := "-"
		if r.Points != nil {
			pts = strconv.FormatFloat(*r.Points, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Division, r.Position, r.Player, pts)
	}
	return tw.Flush()
}
