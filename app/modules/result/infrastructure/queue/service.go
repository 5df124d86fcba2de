package resultqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
)

const metricsService = "river"

// QueueService defines the contract for background import jobs
type QueueService interface {
	// EnqueueImport queues an import and returns the river job id.
	EnqueueImport(ctx context.Context, req resultservice.ImportRequest) (int64, error)
	// GetImportJobs lists recent import jobs, newest first.
	GetImportJobs(ctx context.Context, limit int) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles result import jobs using River
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics metrics.OperationMetrics
}

// NewService creates the River client, migrating River's own tables first.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, m metrics.OperationMetrics, importer Importer) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_result_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", metricsService)
	ctxLogger.Info("Initializing result queue service")

	fail := func(msg string, err error) (*Service, error) {
		ctxLogger.Error(msg, attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fail("failed to parse DSN", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fail("failed to create pgx pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fail("failed to ping database", err)
	}

	driver := riverpgxv5.New(pool)
	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		pool.Close()
		return fail("failed to create river migrator", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return fail("failed to migrate river tables", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewImportResultsWorker(ctxLogger, importer))

	riverClient, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			QueueName:          {MaxWorkers: 4},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return fail("failed to create River client", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", metricsService)
	m.RecordOperationDuration(ctx, "initialize_service", metricsService, time.Since(start))
	ctxLogger.Info("Result queue service initialized successfully")

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: m,
	}, nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	return s.track(ctx, "start_service", func() error {
		if err := s.client.Start(ctx); err != nil {
			return fmt.Errorf("failed to start River client: %w", err)
		}
		return nil
	})
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	return s.track(ctx, "stop_service", func() error {
		defer s.pool.Close()
		if err := s.client.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop River client: %w", err)
		}
		return nil
	})
}

// EnqueueImport queues req on the results queue.
func (s *Service) EnqueueImport(ctx context.Context, req resultservice.ImportRequest) (int64, error) {
	var jobID int64
	err := s.track(ctx, "enqueue_import", func() error {
		res, err := s.client.Insert(ctx, ImportResultsJob{Request: req}, &river.InsertOpts{
			Queue: QueueName,
			UniqueOpts: river.UniqueOpts{
				ByArgs: true, // the same upload twice is one job
			},
		})
		if err != nil {
			return fmt.Errorf("failed to enqueue import job: %w", err)
		}
		jobID = res.Job.ID
		return nil
	})
	if err == nil {
		s.logger.InfoContext(ctx, "Import job enqueued",
			attr.ExtractCorrelationID(ctx),
			attr.String("filename", req.Filename),
			attr.Int64("job_id", jobID),
		)
	}
	return jobID, err
}

// GetImportJobs lists recent import jobs.
func (s *Service) GetImportJobs(ctx context.Context, limit int) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64     `bun:"id"`
		State       string    `bun:"state"`
		Filename    string    `bun:"filename"`
		CreatedAt   time.Time `bun:"created_at"`
		Attempt     int16     `bun:"attempt"`
		MaxAttempts int16     `bun:"max_attempts"`
	}

	var rows []riverJobRow
	err := s.track(ctx, "get_import_jobs", func() error {
		return s.db.NewSelect().
			Table("river_job").
			Column("id", "state", "created_at", "attempt", "max_attempts").
			ColumnExpr("args->'request'->>'filename' AS filename").
			Where("kind = ?", ImportResultsJob{}.Kind()).
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query import jobs: %w", err)
	}

	out := make([]JobInfo, len(rows))
	for i, r := range rows {
		out[i] = JobInfo{
			ID:          r.ID,
			State:       r.State,
			Filename:    r.Filename,
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
			Attempt:     int(r.Attempt),
			MaxAttempts: int(r.MaxAttempts),
		}
	}
	return out, nil
}

// HealthCheck verifies River's job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.track(ctx, "health_check", func() error {
		if _, err := s.db.NewSelect().Table("river_job").Count(ctx); err != nil {
			return fmt.Errorf("river health check failed: %w", err)
		}
		return nil
	})
}

func (s *Service) track(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, op, metricsService)
	defer func() {
		s.metrics.RecordOperationDuration(ctx, op, metricsService, time.Since(start))
	}()

	if err := fn(); err != nil {
		s.logger.ErrorContext(ctx, "Queue operation failed", attr.String("operation", op), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, op, metricsService)
		return err
	}
	s.metrics.RecordOperationSuccess(ctx, op, metricsService)
	return nil
}
