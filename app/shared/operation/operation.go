// Package operation wraps service operations with tracing, metrics, logging,
// panic recovery and transactions.
package operation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/metrics"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Runner carries the telemetry handles of one service.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Metrics metrics.OperationMetrics
	Tracer  trace.Tracer
	DB      *bun.DB
}

// NewRunner fills in defaults for nil logger and metrics.
func NewRunner(service string, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer, db *bun.DB) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Runner{Service: service, Logger: logger, Metrics: m, Tracer: tracer, DB: db}
}

// Func is the signature of a telemetry-wrapped operation.
type Func[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// TxFunc is the signature of an operation body run against a db handle.
// The handle is nil when the runner has no database.
type TxFunc[S any, F any] func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error)

// WithTelemetry runs op inside a span, records metrics and recovers panics.
// Infrastructure errors are wrapped with the operation name.
func WithTelemetry[S any, F any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op Func[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, r.Service+"."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	r.Metrics.RecordOperationAttempt(ctx, operationName, r.Service)

	startTime := time.Now()
	defer func() {
		r.Metrics.RecordOperationDuration(ctx, operationName, r.Service, time.Since(startTime))
	}()

	r.Logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			r.Logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		r.Logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		r.Logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	} else {
		r.Logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	r.Metrics.RecordOperationSuccess(ctx, operationName, r.Service)
	return result, nil
}

// RunInTx runs fn in a transaction. Without a database fn gets a nil handle,
// which repositories resolve to their default connection.
func RunInTx[S any, F any](r *Runner, ctx context.Context, fn TxFunc[S, F]) (results.OperationResult[S, F], error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

// Do is the common case: telemetry around a transactional body, with the
// result unpacked. A domain failure is returned as the error.
func Do[S any](r *Runner, ctx context.Context, operationName, identifier string, fn TxFunc[S, error]) (S, error) {
	var zero S
	result, err := WithTelemetry(r, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return RunInTx(r, ctx, fn)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}
