package resultservice

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/Black-And-White-Club/frolf-stats/app/modules/result/application/parsers"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/frolf-stats/app/modules/score/domain"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/uptrace/bun"
)

type summaryResult = results.OperationResult[*ImportSummary, error]

// Import parses an uploaded results file, allocates round points per
// division and upserts every row in one transaction. The imported event
// is published after commit.
func (s *ResultService) Import(ctx context.Context, req ImportRequest) (*ImportSummary, error) {
	summary, err := operation.Do(s.runner, ctx, "ImportResults", req.Filename, func(ctx context.Context, db bun.IDB) (summaryResult, error) {
		if err := validateImport(req); err != nil {
			return results.FailureResult[*ImportSummary, error](err), nil
		}

		date, err := s.dates.Resolve(req.Date, req.Filename, s.now())
		if err != nil {
			return results.FailureResult[*ImportSummary, error](fmt.Errorf("%w: %w", ErrValidation, err)), nil
		}

		parser, err := s.parsers.GetParser(req.Filename)
		if err != nil {
			return results.FailureResult[*ImportSummary, error](fmt.Errorf("%w: %w", ErrValidation, err)), nil
		}
		sheet, err := parser.Parse(req.Data)
		if err != nil {
			return results.FailureResult[*ImportSummary, error](fmt.Errorf("%w: %w", ErrValidation, err)), nil
		}

		if failure, err := s.checkSessions(ctx, db, req.EventSessionID, req.LeagueSessionID); failure != nil || err != nil {
			return failedWith[*ImportSummary](failure, err)
		}

		maxPoints := s.maxPoints
		if req.MaxPoints != nil {
			maxPoints = *req.MaxPoints
		}

		rows, summary := buildImportRows(sheet.Rows, req, maxPoints)
		for _, row := range rows {
			row.Date = date
		}
		summary.Date = date

		if err := s.repo.UpsertBatch(ctx, db, rows); err != nil {
			return written[*ImportSummary](err)
		}
		return results.SuccessResult[*ImportSummary, error](summary), nil
	})
	if err != nil {
		return nil, err
	}

	s.announceImport(ctx, req, summary)
	return summary, nil
}

// buildImportRows keeps the first row of each player, scores ranked rows by
// division and leaves unranked rows at zero points with an empty position.
func buildImportRows(parsed []parsers.ResultRow, req ImportRequest, maxPoints float64) ([]*resultdb.EventResult, *ImportSummary) {
	summary := &ImportSummary{}
	seen := make(map[string]bool, len(parsed))
	kept := make([]parsers.ResultRow, 0, len(parsed))

	for _, row := range parsed {
		if row.Username == "" {
			row.Username = row.Name
		}
		if row.Username == "" || seen[row.Username] {
			summary.Skipped++
			continue
		}
		seen[row.Username] = true
		kept = append(kept, row)
	}

	entries := make([]scoredomain.FinishEntry, len(kept))
	divisions := make(map[string]bool)
	for i, row := range kept {
		entries[i] = scoredomain.FinishEntry{
			Division:    row.Division,
			PlayerID:    strconv.Itoa(i),
			PositionRaw: row.PositionRaw,
		}
		divisions[row.Division] = true
	}

	points := make(map[string]float64, len(kept))
	for _, scored := range scoredomain.AllocateByDivision(entries, maxPoints) {
		points[scored.PlayerID] = scored.Points
	}

	out := make([]*resultdb.EventResult, len(kept))
	for i, row := range kept {
		er := &resultdb.EventResult{
			Division:           row.Division,
			Position:           row.Position,
			PositionRaw:        row.PositionRaw,
			Name:               row.Name,
			EventRelativeScore: row.EventRelativeScore,
			EventTotalScore:    row.EventTotalScore,
			PDGANumber:         row.PDGANumber,
			Username:           row.Username,
			RoundRelativeScore: row.RoundRelativeScore,
			RoundTotalScore:    row.RoundTotalScore,
			CourseLayoutID:     req.CourseLayoutID,
			EventSessionID:     req.EventSessionID,
			LeagueSessionID:    req.LeagueSessionID,
		}
		if p, ok := points[strconv.Itoa(i)]; ok {
			er.RoundPoints = p
			summary.Scored++
		} else {
			er.Position = ""
			summary.Unranked++
		}
		out[i] = er
	}

	summary.Imported = len(out)
	summary.Divisions = make([]string, 0, len(divisions))
	for d := range divisions {
		summary.Divisions = append(summary.Divisions, d)
	}
	sort.Strings(summary.Divisions)
	return out, summary
}

func (s *ResultService) announceImport(ctx context.Context, req ImportRequest, summary *ImportSummary) {
	if s.publisher == nil {
		s.invalidateQuietly(ctx, req.EventSessionID)
		return
	}

	event := ImportedEvent{
		EventSessionID:  req.EventSessionID,
		LeagueSessionID: req.LeagueSessionID,
		Date:            summary.Date,
		Divisions:       summary.Divisions,
		Rows:            summary.Imported,
	}
	if err := s.publisher.Publish(ctx, TopicResultsImported, event); err != nil {
		s.runner.Logger.WarnContext(ctx, "Failed to publish import event, invalidating cache directly",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", TopicResultsImported),
			attr.Error(err),
		)
		s.invalidateQuietly(ctx, req.EventSessionID)
	}
}
