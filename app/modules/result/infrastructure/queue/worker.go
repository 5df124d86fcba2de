package resultqueue

import (
	"context"
	"errors"
	"log/slog"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	"github.com/Black-And-White-Club/frolf-stats/app/modules/result/application/parsers"
	resultdb "github.com/Black-And-White-Club/frolf-stats/app/modules/result/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/riverqueue/river"
)

// Importer is the part of the result service a worker needs.
type Importer interface {
	Import(ctx context.Context, req resultservice.ImportRequest) (*resultservice.ImportSummary, error)
}

// ImportResultsWorker runs queued imports.
type ImportResultsWorker struct {
	river.WorkerDefaults[ImportResultsJob]
	importer Importer
	logger   *slog.Logger
}

// NewImportResultsWorker creates a worker backed by importer.
func NewImportResultsWorker(logger *slog.Logger, importer Importer) *ImportResultsWorker {
	return &ImportResultsWorker{importer: importer, logger: logger}
}

// Work imports the file. Input problems cancel the job; anything else is
// returned so river retries it.
func (w *ImportResultsWorker) Work(ctx context.Context, job *river.Job[ImportResultsJob]) error {
	logger := w.logger.With(
		attr.Int64("job_id", job.ID),
		attr.String("filename", job.Args.Request.Filename),
		attr.Int("attempt", job.Attempt),
	)
	logger.InfoContext(ctx, "Processing import job")

	summary, err := w.importer.Import(ctx, job.Args.Request)
	if err != nil {
		if permanent(err) {
			logger.WarnContext(ctx, "Import job rejected", attr.Error(err))
			return river.JobCancel(err)
		}
		logger.ErrorContext(ctx, "Import job failed", attr.Error(err))
		return err
	}

	logger.InfoContext(ctx, "Import job completed",
		attr.Int("imported", summary.Imported),
		attr.Int("scored", summary.Scored),
		attr.Int("unranked", summary.Unranked),
		attr.Int("skipped", summary.Skipped),
	)
	return nil
}

func permanent(err error) bool {
	return errors.Is(err, resultservice.ErrValidation) ||
		errors.Is(err, resultservice.ErrUnknownSession) ||
		errors.Is(err, resultdb.ErrUnknownReference) ||
		errors.Is(err, parsers.ErrMalformedSheet)
}
