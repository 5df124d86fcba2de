// Package scoredomain allocates round points from finishing positions.
//
// Within one division, ranked entries are sorted by position and awarded
// maxPoints minus their sorted index. Entries sharing a position split the
// points of every index they occupy evenly. Entries without a position are
// not scored.
package scoredomain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxPoints is the award for an untied first place.
const DefaultMaxPoints = 30.0

// FinishEntry is one player's finish in one division of one round.
// A nil PositionRaw marks a DNF or an unavailable position.
type FinishEntry struct {
	Division    string
	PlayerID    string
	PositionRaw *float64
}

// ScoredEntry is the points awarded to a ranked FinishEntry.
type ScoredEntry struct {
	Division string
	PlayerID string
	Points   float64
}

// AllocatePoints scores the entries of a single division. Callers group by
// division first. Unranked entries produce no output. The input slice is not
// modified.
func AllocatePoints(entries []FinishEntry, maxPoints float64) []ScoredEntry {
	ranked := make([]FinishEntry, 0, len(entries))
	for _, e := range entries {
		if e.PositionRaw == nil || math.IsNaN(*e.PositionRaw) {
			continue
		}
		ranked = append(ranked, e)
	}
	if len(ranked) == 0 {
		return []ScoredEntry{}
	}

	// Stable keeps tied entries in input order, so output is deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].PositionRaw < *ranked[j].PositionRaw
	})

	out := make([]ScoredEntry, 0, len(ranked))
	for i := 0; i < len(ranked); {
		pos := *ranked[i].PositionRaw
		j := i + 1
		for j < len(ranked) && *ranked[j].PositionRaw == pos {
			j++
		}

		tied := j - i
		points := maxPoints - float64(i) - float64(tied-1)/2

		for k := i; k < j; k++ {
			out = append(out, ScoredEntry{
				Division: ranked[k].Division,
				PlayerID: ranked[k].PlayerID,
				Points:   points,
			})
		}
		i = j
	}
	return out
}

// AllocateByDivision groups entries by division and allocates each group
// independently. Output is ordered by division name, then by finish.
func AllocateByDivision(entries []FinishEntry, maxPoints float64) []ScoredEntry {
	groups := make(map[string][]FinishEntry)
	var divisions []string
	for _, e := range entries {
		if _, ok := groups[e.Division]; !ok {
			divisions = append(divisions, e.Division)
		}
		groups[e.Division] = append(groups[e.Division], e)
	}
	sort.Strings(divisions)

	out := make([]ScoredEntry, 0, len(entries))
	for _, d := range divisions {
		out = append(out, AllocatePoints(groups[d], maxPoints)...)
	}
	return out
}

// ParsePosition coerces a textual position into the float64 used for
// ordering and tie detection. Blank, non-numeric, NaN and infinite values
// yield nil. A single leading "T" or "t" (as in "T3") is accepted.
func ParsePosition(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if len(s) > 0 && (s[0] == 'T' || s[0] == 't') {
		s = s[1:]
	}
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Position returns a pointer to p as float64. Convenience for integral sources.
func Position[T ~int | ~int32 | ~int64 | ~float32 | ~float64](p T) *float64 {
	v := float64(p)
	return &v
}
