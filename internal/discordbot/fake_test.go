package discordbot

import (
	"context"

	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
)

type FakeStatsAPI struct {
	StandingsFunc func(ctx context.Context, sessionID int64, division string) ([]apiclient.Standing, error)
	MedianFunc    func(ctx context.Context, sessionID *int64, division string) (*float64, error)

	trace []string
}

func (f *FakeStatsAPI) Trace() []string { return f.trace }

func (f *FakeStatsAPI) Standings(ctx context.Context, sessionID int64, division string) ([]apiclient.Standing, error) {
	f.trace = append(f.trace, "Standings")
	if f.StandingsFunc != nil {
		return f.StandingsFunc(ctx, sessionID, division)
	}
	return nil, nil
}

func (f *FakeStatsAPI) Median(ctx context.Context, sessionID *int64, division string) (*float64, error) {
	f.trace = append(f.trace, "Median")
	if f.MedianFunc != nil {
		return f.MedianFunc(ctx, sessionID, division)
	}
	return nil, nil
}

var _ StatsAPI = (*FakeStatsAPI)(nil)
