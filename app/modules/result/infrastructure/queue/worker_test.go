package resultqueue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeImporter struct {
	calls      []resultservice.ImportRequest
	ImportFunc func(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error)
}

func (f *FakeImporter) Import(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error) {
	f.calls = append(f.calls, req)
	if f.ImportFunc != nil {
		return f.ImportFunc(ctx, req)
	}
	return &resultservice.ImportSummary{}, nil
}

var _ Importer = (*FakeImporter)(nil)

func TestImportResultsJob_Kind(t *testing.T) {
	assert.Equal(t, "import_results", ImportResultsJob{}.Kind())
}

func TestImportResultsWorker_Work(t *testing.T) {
	transient := errors.New("connection reset")
	invalid := errors.Join(resultservice.ErrValidation, errors.New("file is empty"))

	tests := []struct {
		name       string
		importErr  error
		wantErr    bool
		wantCancel bool
	}{
		{name: "success"},
		{name: "transient failure is retried", importErr: transient, wantErr: true},
		{name: "invalid input is cancelled", importErr: invalid, wantErr: true, wantCancel: true},
		{name: "unknown session is cancelled", importErr: resultservice.ErrUnknownSession, wantErr: true, wantCancel: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer := &FakeImporter{}
			if tt.importErr != nil {
				importer.ImportFunc = func(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error) {
					return nil, tt.importErr
				}
			}
			w := NewImportResultsWorker(slog.New(slog.NewTextHandler(io.Discard, nil)), importer)

			job := &river.Job[ImportResultsJob]{
				JobRow: &rivertype.JobRow{ID: 17, Attempt: 1},
				Args: ImportResultsJob{Request: resultservice.ImportRequest{
					Filename: "2024-05-01.csv",
					Data:     []byte("division,position,username\n"),
				}},
			}
			err := w.Work(context.Background(), job)

			require.Len(t, importer.calls, 1)
			assert.Equal(t, "2024-05-01.csv", importer.calls[0].Filename)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.importErr)
			if tt.wantCancel {
				assert.NotEqual(t, tt.importErr, err, "permanent failures are wrapped as a cancellation")
			} else {
				assert.Equal(t, tt.importErr, err)
			}
		})
	}
}
