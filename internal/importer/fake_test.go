package importer

import (
	"context"

	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
)

// FakeAPI records calls and delegates to the Func fields when set.
type FakeAPI struct {
	CreateFunc        func(ctx context.Context, path string, body any) (int64, error)
	ImportResultsFunc func(ctx context.Context, u apiclient.Upload) (*apiclient.ImportResult, error)

	trace   []string
	uploads []apiclient.Upload
}

func (f *FakeAPI) Trace() []string { return f.trace }

func (f *FakeAPI) Create(ctx context.Context, path string, body any) (int64, error) {
	f.trace = append(f.trace, "Create "+path)
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, path, body)
	}
	return int64(len(f.trace)), nil
}

func (f *FakeAPI) ImportResults(ctx context.Context, u apiclient.Upload) (*apiclient.ImportResult, error) {
	f.trace = append(f.trace, "ImportResults "+u.Filename)
	f.uploads = append(f.uploads, u)
	if f.ImportResultsFunc != nil {
		return f.ImportResultsFunc(ctx, u)
	}
	return &apiclient.ImportResult{}, nil
}

var _ API = (*FakeAPI)(nil)
