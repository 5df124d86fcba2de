package eventdb

import (
	"github.com/Black-And-White-Club/frolf-stats/app/shared/timeutil"
	"github.com/uptrace/bun"
)

// Kind selects which of the three event tables a query targets. The tables
// share one column layout.
type Kind string

const (
	KindDiscEvent     Kind = "disc_events"
	KindEventSession  Kind = "event_sessions"
	KindLeagueSession Kind = "league_sessions"
)

// Valid reports whether k names a known table.
func (k Kind) Valid() bool {
	switch k {
	case KindDiscEvent, KindEventSession, KindLeagueSession:
		return true
	}
	return false
}

// DatesRequired reports whether rows of this kind must carry both dates.
// League sessions may be open-ended.
func (k Kind) DatesRequired() bool {
	return k != KindLeagueSession
}

// Event is a disc event, event session or league session. The table comes
// from the Kind passed to the repository.
type Event struct {
	bun.BaseModel `bun:"table:event_sessions,alias:e"`

	ID          int64          `bun:"id,pk,autoincrement" json:"id"`
	Name        string         `bun:"name,notnull" json:"name"`
	StartDate   *timeutil.Date `bun:"start_date" json:"start_date"`
	EndDate     *timeutil.Date `bun:"end_date" json:"end_date"`
	Description *string        `bun:"description" json:"description"`
}
