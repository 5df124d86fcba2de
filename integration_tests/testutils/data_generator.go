package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds request bodies and results exports for tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator. An optional seed makes the data
// reproducible.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// Course returns a course body with one layout of holes holes.
func (g *TestDataGenerator) Course(holes int) map[string]any {
	hs := make([]map[string]any, holes)
	par := 0
	for i := range hs {
		p := g.faker.Number(3, 5)
		par += p
		hs[i] = map[string]any{
			"hole_number": i + 1,
			"par":         p,
			"distance":    float64(g.faker.Number(180, 650)),
		}
	}
	return map[string]any{
		"name":  fmt.Sprintf("%s %s DGC", g.faker.City(), g.faker.Noun()),
		"city":  g.faker.City(),
		"state": g.faker.State(),
		"holes": holes,
		"layouts": []map[string]any{{
			"name":  "Main",
			"par":   par,
			"holes": hs,
		}},
	}
}

// Session returns an event or league session body spanning the given dates.
func (g *TestDataGenerator) Session(start, end time.Time) map[string]any {
	return map[string]any{
		"name":        fmt.Sprintf("%s League %d", g.faker.Adjective(), start.Year()),
		"start_date":  start.Format("2006-01-02"),
		"end_date":    end.Format("2006-01-02"),
		"description": g.faker.Sentence(6),
	}
}

// Player is one line of a generated results export. A zero Position is a DNF.
type Player struct {
	Division string
	Position int
	Username string
	Total    int
}

// Usernames returns n distinct usernames.
func (g *TestDataGenerator) Usernames(n int) []string {
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for len(out) < n {
		u := strings.ToLower(g.faker.Username())
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// ResultsCSV renders players as a UDisc-style export.
func ResultsCSV(players []Player) []byte {
	var b strings.Builder
	b.WriteString("division,position,position_raw,name,username,round_relative_score,round_total_score\n")
	for _, p := range players {
		if p.Position == 0 {
			fmt.Fprintf(&b, "%s,DNF,DNF,%s,%s,,\n", p.Division, p.Username, p.Username)
			continue
		}
		fmt.Fprintf(&b, "%s,%d,%d,%s,%s,%d,%d\n", p.Division, p.Position, p.Position, p.Username, p.Username, p.Total-54, p.Total)
	}
	return []byte(b.String())
}
