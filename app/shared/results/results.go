// Package results carries the outcome of a service operation, keeping domain
// failures (not found, conflict, validation) apart from infrastructure errors.
package results

// OperationResult holds either a success payload or a domain failure.
// Infrastructure errors travel separately as a plain error.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult builds a result carrying a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult builds a result carrying a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether a success payload is set.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether a domain failure is set.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
