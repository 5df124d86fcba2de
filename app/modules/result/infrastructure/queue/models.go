package resultqueue

import resultservice "github.com/Black-And-White-Club/frolf-stats/app/modules/result/application"

// QueueName is the dedicated river queue for result imports.
const QueueName = "results"

// ImportResultsJob carries one uploaded results file to a worker.
type ImportResultsJob struct {
	Request resultservice.ImportRequest `json:"request"`
}

// Kind returns the job type identifier for River
func (ImportResultsJob) Kind() string { return "import_results" }

// JobInfo represents information about a queued import (for monitoring)
type JobInfo struct {
	ID          int64  `json:"id"`
	State       string `json:"state"`
	Filename    string `json:"filename"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
