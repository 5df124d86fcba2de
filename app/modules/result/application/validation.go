package resultservice

import (
	"fmt"
	"strings"

	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
)

func validateResult(in ResultInput) error {
	switch {
	case in.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrValidation)
	case strings.TrimSpace(in.Username) == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case in.CourseLayoutID <= 0:
		return fmt.Errorf("%w: course_layout_id is required", ErrValidation)
	case in.RoundPoints < 0:
		return fmt.Errorf("%w: round_points must not be negative", ErrValidation)
	}
	return nil
}

func validateImport(req ImportRequest) error {
	switch {
	case len(req.Data) == 0:
		return fmt.Errorf("%w: file is empty", ErrValidation)
	case req.CourseLayoutID <= 0:
		return fmt.Errorf("%w: course_layout_id is required", ErrValidation)
	case req.EventSessionID == nil && req.LeagueSessionID == nil:
		return fmt.Errorf("%w: event_session_id or league_session_id is required", ErrValidation)
	case req.MaxPoints != nil && *req.MaxPoints <= 0:
		return fmt.Errorf("%w: max_points must be positive", ErrValidation)
	}
	return nil
}

func resultFromInput(in ResultInput) *resultdb.EventResult {
	return &resultdb.EventResult{
		Date:               in.Date.UTC(),
		Division:           strings.TrimSpace(in.Division),
		Position:           strings.TrimSpace(in.Position),
		PositionRaw:        in.PositionRaw,
		Name:               strings.TrimSpace(in.Name),
		EventRelativeScore: in.EventRelativeScore,
		EventTotalScore:    in.EventTotalScore,
		PDGANumber:         in.PDGANumber,
		Username:           strings.TrimSpace(in.Username),
		RoundRelativeScore: in.RoundRelativeScore,
		RoundTotalScore:    in.RoundTotalScore,
		RoundPoints:        in.RoundPoints,
		CourseLayoutID:     in.CourseLayoutID,
		EventSessionID:     in.EventSessionID,
		LeagueSessionID:    in.LeagueSessionID,
	}
}
