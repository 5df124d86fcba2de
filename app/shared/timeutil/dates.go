// Package timeutil resolves the date a round was played from user input or a
// results file name.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// RoundHour is the hour of day assigned to rounds whose time is unknown.
const RoundHour = 18

// ErrNoDate is returned when neither the input nor the file name carries a date.
var ErrNoDate = errors.New("no round date found")

var fileDatePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// DateParser resolves round dates. It wraps a natural-language parser built once.
type DateParser struct {
	w *when.Parser
}

// NewDateParser builds a parser with the English and common rule sets.
func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateParser{w: w}
}

// Parse resolves input into a UTC time. Accepted forms, in order: RFC3339,
// YYYY-MM-DD (placed at RoundHour), then natural language relative to now.
func (p *DateParser) Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrNoDate
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return atRoundHour(t), nil
	}

	r, err := p.w.Parse(strings.ToLower(input), now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize date %q", input)
	}
	return r.Time.UTC(), nil
}

// FromFilename extracts the first YYYY-MM-DD in name, placed at RoundHour UTC.
func FromFilename(name string) (time.Time, error) {
	m := fileDatePattern.FindString(name)
	if m == "" {
		return time.Time{}, ErrNoDate
	}
	t, err := time.Parse("2006-01-02", m)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q in file name: %w", m, err)
	}
	return atRoundHour(t), nil
}

// Resolve prefers explicit input and falls back to the file name.
func (p *DateParser) Resolve(input, filename string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(input) != "" {
		return p.Parse(input, now)
	}
	return FromFilename(filename)
}

func atRoundHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), RoundHour, 0, 0, 0, time.UTC)
}
