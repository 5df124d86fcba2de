package resulthandlers

import (
	"context"
	"net/http"
)

// Handlers serves the event result and standings HTTP routes.
type Handlers interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListByUsername(w http.ResponseWriter, r *http.Request)
	ListBySession(w http.ResponseWriter, r *http.Request)
	Median(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)

	Standings(w http.ResponseWriter, r *http.Request)
	PointsChart(w http.ResponseWriter, r *http.Request)

	// HandleResultsImported consumes event_results.imported.v1.
	HandleResultsImported(ctx context.Context, payload []byte) error
}
