package resultservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	eventdb "github.com/Black-And-White-Club/frolf-stats/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/result/application/parsers"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/cache"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/timeutil"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// CacheTTL bounds how long medians and standings are served from cache.
const CacheTTL = 5 * time.Minute

// SessionChecker reports whether an event or league session exists.
type SessionChecker interface {
	Exists(ctx context.Context, db bun.IDB, kind eventdb.Kind, id int64) (bool, error)
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// ResultService implements the Service interface.
type ResultService struct {
	repo      resultdb.Repository
	sessions  SessionChecker
	cache     cache.Cache
	publisher Publisher
	parsers   parsers.ParserFactory
	dates     *timeutil.DateParser
	maxPoints float64
	now       func() time.Time
	runner    *operation.Runner
}

// NewResultService creates a new ResultService. A nil cache disables
// caching; a nil publisher makes imports invalidate the cache directly.
func NewResultService(
	repo resultdb.Repository,
	sessions SessionChecker,
	c cache.Cache,
	publisher Publisher,
	maxPoints float64,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ResultService {
	if c == nil {
		c = cache.NewNoop()
	}
	return &ResultService{
		repo:      repo,
		sessions:  sessions,
		cache:     c,
		publisher: publisher,
		parsers:   parsers.NewFactory(),
		dates:     timeutil.NewDateParser(),
		maxPoints: maxPoints,
		now:       time.Now,
		runner:    operation.NewRunner("ResultService", logger, m, tracer, db),
	}
}

type resultResult = results.OperationResult[*resultdb.EventResult, error]
type listResult = results.OperationResult[[]*resultdb.EventResult, error]

// List returns a page of event results.
func (s *ResultService) List(ctx context.Context, skip, limit int) ([]*resultdb.EventResult, error) {
	return operation.Do(s.runner, ctx, "ListResults", strconv.Itoa(skip), func(ctx context.Context, db bun.IDB) (listResult, error) {
		return listed(s.repo.List(ctx, db, skip, limit))
	})
}

// Get retrieves one event result.
func (s *ResultService) Get(ctx context.Context, id int64) (*resultdb.EventResult, error) {
	return operation.Do(s.runner, ctx, "GetResult", idString(id), func(ctx context.Context, db bun.IDB) (resultResult, error) {
		return lookup(s.repo.GetByID(ctx, db, id))
	})
}

// Create stores a single result after checking its sessions exist.
func (s *ResultService) Create(ctx context.Context, in ResultInput) (*resultdb.EventResult, error) {
	row, err := operation.Do(s.runner, ctx, "CreateResult", in.Username, func(ctx context.Context, db bun.IDB) (resultResult, error) {
		if err := validateResult(in); err != nil {
			return results.FailureResult[*resultdb.EventResult, error](err), nil
		}
		if failure, err := s.checkSessions(ctx, db, in.EventSessionID, in.LeagueSessionID); failure != nil || err != nil {
			return failedWith[*resultdb.EventResult](failure, err)
		}

		row := resultFromInput(in)
		if err := s.repo.Create(ctx, db, row); err != nil {
			return written[*resultdb.EventResult](err)
		}
		return results.SuccessResult[*resultdb.EventResult, error](row), nil
	})
	if err == nil {
		s.invalidateQuietly(ctx, row.EventSessionID)
	}
	return row, err
}

// Replace overwrites every field of an existing result.
func (s *ResultService) Replace(ctx context.Context, id int64, in ResultInput) (*resultdb.EventResult, error) {
	var previousSession *int64
	row, err := operation.Do(s.runner, ctx, "ReplaceResult", idString(id), func(ctx context.Context, db bun.IDB) (resultResult, error) {
		if err := validateResult(in); err != nil {
			return results.FailureResult[*resultdb.EventResult, error](err), nil
		}
		existing, err := s.repo.GetByID(ctx, db, id)
		if err != nil {
			return lookup(nil, err)
		}
		previousSession = existing.EventSessionID

		if failure, err := s.checkSessions(ctx, db, in.EventSessionID, in.LeagueSessionID); failure != nil || err != nil {
			return failedWith[*resultdb.EventResult](failure, err)
		}

		row := resultFromInput(in)
		row.ID = id
		if err := s.repo.Replace(ctx, db, row); err != nil {
			return written[*resultdb.EventResult](err)
		}
		return results.SuccessResult[*resultdb.EventResult, error](row), nil
	})
	if err == nil {
		s.invalidateQuietly(ctx, previousSession)
		if !sameID(previousSession, row.EventSessionID) {
			s.invalidateQuietly(ctx, row.EventSessionID)
		}
	}
	return row, err
}

// Delete removes one result.
func (s *ResultService) Delete(ctx context.Context, id int64) error {
	var session *int64
	_, err := operation.Do(s.runner, ctx, "DeleteResult", idString(id), func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		existing, err := s.repo.GetByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, resultdb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, err
		}
		session = existing.EventSessionID

		if err := s.repo.Delete(ctx, db, id); err != nil {
			if errors.Is(err, resultdb.ErrNotFound) {
				return results.FailureResult[bool, error](err), nil
			}
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	if err == nil {
		s.invalidateQuietly(ctx, session)
	}
	return err
}

// ListByUsername returns one player's results in date order.
func (s *ResultService) ListByUsername(ctx context.Context, username string) ([]*resultdb.EventResult, error) {
	return operation.Do(s.runner, ctx, "ListResultsByUsername", username, func(ctx context.Context, db bun.IDB) (listResult, error) {
		return listed(s.repo.ListByUsername(ctx, db, username))
	})
}

// ListBySession returns a page of one event session's results.
func (s *ResultService) ListBySession(ctx context.Context, sessionID int64, skip, limit int) ([]*resultdb.EventResult, error) {
	return operation.Do(s.runner, ctx, "ListResultsBySession", idString(sessionID), func(ctx context.Context, db bun.IDB) (listResult, error) {
		return listed(s.repo.ListBySession(ctx, db, sessionID, skip, limit))
	})
}

type cachedMedian struct {
	Value *float64 `json:"value"`
}

// Median returns the median round_total_score, or nil when nothing matches.
func (s *ResultService) Median(ctx context.Context, q MedianQuery) (*float64, error) {
	key := medianKey(q)
	return operation.Do(s.runner, ctx, "MedianRoundScore", key, func(ctx context.Context, db bun.IDB) (results.OperationResult[*float64, error], error) {
		var cached cachedMedian
		if s.cacheGet(ctx, key, &cached) {
			return results.SuccessResult[*float64, error](cached.Value), nil
		}

		median, err := s.repo.MedianRoundScore(ctx, db, resultdb.MedianFilter{
			EventSessionID: q.EventSessionID,
			Division:       q.Division,
		})
		if err != nil {
			return results.OperationResult[*float64, error]{}, err
		}
		s.cacheSet(ctx, key, cachedMedian{Value: median})
		return results.SuccessResult[*float64, error](median), nil
	})
}

// Standings returns the points table of an event session.
func (s *ResultService) Standings(ctx context.Context, sessionID int64, division string) ([]resultdb.Standing, error) {
	key := standingsKey(sessionID, division)
	return operation.Do(s.runner, ctx, "Standings", key, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]resultdb.Standing, error], error) {
		var cached []resultdb.Standing
		if s.cacheGet(ctx, key, &cached) {
			return results.SuccessResult[[]resultdb.Standing, error](cached), nil
		}

		standings, err := s.repo.Standings(ctx, db, sessionID, division)
		if err != nil {
			return results.OperationResult[[]resultdb.Standing, error]{}, err
		}
		if standings == nil {
			standings = []resultdb.Standing{}
		}
		s.cacheSet(ctx, key, standings)
		return results.SuccessResult[[]resultdb.Standing, error](standings), nil
	})
}

// PointsChart renders the cumulative points of username in a session.
func (s *ResultService) PointsChart(ctx context.Context, sessionID int64, username string) ([]byte, error) {
	return operation.Do(s.runner, ctx, "PointsChart", username, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]byte, error], error) {
		history, err := s.repo.PointsHistory(ctx, db, sessionID, username)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		png, err := renderPointsChart(username, history)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
}

// InvalidateSession drops cache entries that depend on sessionID.
func (s *ResultService) InvalidateSession(ctx context.Context, sessionID *int64) error {
	prefixes := []string{"median:", "standings:"}
	if sessionID != nil {
		id := idString(*sessionID)
		prefixes = []string{"median:" + id + ":", "median:all:", "standings:" + id + ":"}
	}
	for _, p := range prefixes {
		if err := s.cache.DeletePrefix(ctx, p); err != nil {
			return fmt.Errorf("failed to invalidate %q: %w", p, err)
		}
	}
	return nil
}

func (s *ResultService) invalidateQuietly(ctx context.Context, sessionID *int64) {
	if err := s.InvalidateSession(ctx, sessionID); err != nil {
		s.runner.Logger.WarnContext(ctx, "Cache invalidation failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
	}
}

// checkSessions returns a domain failure when a referenced session is
// missing, or an infrastructure error when the lookup fails.
func (s *ResultService) checkSessions(ctx context.Context, db bun.IDB, eventSessionID, leagueSessionID *int64) (error, error) {
	refs := []struct {
		kind eventdb.Kind
		id   *int64
	}{
		{eventdb.KindEventSession, eventSessionID},
		{eventdb.KindLeagueSession, leagueSessionID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		ok, err := s.sessions.Exists(ctx, db, ref.kind, *ref.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return fmt.Errorf("%w: %s %d", ErrUnknownSession, ref.kind, *ref.id), nil
		}
	}
	return nil, nil
}

func (s *ResultService) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.runner.Logger.WarnContext(ctx, "Cache read failed", attr.String("key", key), attr.Error(err))
		return false
	}
	return found
}

func (s *ResultService) cacheSet(ctx context.Context, key string, v any) {
	if err := s.cache.SetJSON(ctx, key, v, CacheTTL); err != nil {
		s.runner.Logger.WarnContext(ctx, "Cache write failed", attr.String("key", key), attr.Error(err))
	}
}

func medianKey(q MedianQuery) string {
	session, division := "all", "all"
	if q.EventSessionID != nil {
		session = idString(*q.EventSessionID)
	}
	if q.Division != nil {
		division = *q.Division
	}
	return "median:" + session + ":" + division
}

func standingsKey(sessionID int64, division string) string {
	if division == "" {
		division = "all"
	}
	return "standings:" + idString(sessionID) + ":" + division
}

func lookup(row *resultdb.EventResult, err error) (resultResult, error) {
	if err != nil {
		if errors.Is(err, resultdb.ErrNotFound) {
			return results.FailureResult[*resultdb.EventResult, error](err), nil
		}
		return resultResult{}, err
	}
	return results.SuccessResult[*resultdb.EventResult, error](row), nil
}

// written maps repository write errors onto domain failures.
func written[T any](err error) (results.OperationResult[T, error], error) {
	switch {
	case errors.Is(err, resultdb.ErrNotFound),
		errors.Is(err, resultdb.ErrDuplicate),
		errors.Is(err, resultdb.ErrUnknownReference):
		return results.FailureResult[T, error](err), nil
	default:
		return results.OperationResult[T, error]{}, err
	}
}

func listed(rows []*resultdb.EventResult, err error) (listResult, error) {
	if err != nil {
		return listResult{}, err
	}
	if rows == nil {
		rows = []*resultdb.EventResult{}
	}
	return results.SuccessResult[[]*resultdb.EventResult, error](rows), nil
}

func failedWith[T any](failure, err error) (results.OperationResult[T, error], error) {
	if err != nil {
		return results.OperationResult[T, error]{}, err
	}
	return results.FailureResult[T, error](failure), nil
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
