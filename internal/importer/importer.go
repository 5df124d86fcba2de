// Package importer loads results exports and JSON fixtures into the API.
// An import keeps going when one row or file fails and reports the totals.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-stats/internal/apiclient"
)

// Resource paths accepted by LoadResources.
const (
	PathCourses        = "/courses"
	PathDiscEvents     = "/disc-events"
	PathEventSessions  = "/event-sessions"
	PathLeagueSessions = "/league-sessions"
)

// API is the subset of apiclient.Client the importer drives.
type API interface {
	Create(ctx context.Context, path string, body any) (int64, error)
	ImportResults(ctx context.Context, u apiclient.Upload) (*apiclient.ImportResult, error)
}

var _ API = (*apiclient.Client)(nil)

// Failure is one item that could not be imported.
type Failure struct {
	Item string
	Err  error
}

// Report totals an import run.
type Report struct {
	Succeeded int
	Failures  []Failure
	// Rows sums the imported rows of result uploads.
	Rows int
	// Queued counts uploads the server deferred to its job queue.
	Queued int
}

// Summary is the one-line final count printed by the CLI.
func (r Report) Summary() string {
	s := fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, len(r.Failures))
	if r.Rows > 0 {
		s += fmt.Sprintf(", %d rows imported", r.Rows)
	}
	if r.Queued > 0 {
		s += fmt.Sprintf(", %d queued", r.Queued)
	}
	return s
}

// Importer pushes files and fixtures through an API.
type Importer struct {
	api    API
	logger *slog.Logger
}

// New returns an Importer. A nil logger uses slog.Default.
func New(api API, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{api: api, logger: logger}
}

// ResultFiles lists the .csv, .xlsx and .xls files at path. A file path is
// returned as is; a directory is walked and its matches sorted.
func ResultFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !isResultFile(path) {
			return nil, fmt.Errorf("%s is not a .csv or .xlsx file", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isResultFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isResultFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// UploadResults uploads every file with the shared form fields of tmpl.
// Filename and Data of tmpl are ignored.
func (im *Importer) UploadResults(ctx context.Context, files []string, tmpl apiclient.Upload) Report {
	var rep Report
	for _, f := range files {
		if ctx.Err() != nil {
			rep.Failures = append(rep.Failures, Failure{Item: f, Err: ctx.Err()})
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			im.fail(ctx, &rep, f, err)
			continue
		}
		u := tmpl
		u.Filename = filepath.Base(f)
		u.Data = data

		res, err := im.api.ImportResults(ctx, u)
		if err != nil {
			im.fail(ctx, &rep, f, err)
			continue
		}
		rep.Succeeded++
		if res.Queued() {
			rep.Queued++
			im.logger.InfoContext(ctx, "Results import queued", attr.String("file", f), attr.Int64("job_id", res.JobID))
			continue
		}
		rep.Rows += res.Imported
		im.logger.InfoContext(ctx, "Results imported",
			attr.String("file", f),
			attr.Int("imported", res.Imported),
			attr.Int("scored", res.Scored),
			attr.Int("unranked", res.Unranked),
			attr.Int("skipped", res.Skipped),
		)
	}
	return rep
}

// DecodeRecords reads a JSON array of objects, or a single object, as raw
// records.
func DecodeRecords(r io.Reader) ([]json.RawMessage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty input")
	}

	if raw[0] == '{' {
		return []json.RawMessage{json.RawMessage(raw)}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	return records, nil
}

// LoadResources posts each record to path.
func (im *Importer) LoadResources(ctx context.Context, path string, records []json.RawMessage) Report {
	var rep Report
	for i, rec := range records {
		item := fmt.Sprintf("record %d", i+1)
		if ctx.Err() != nil {
			rep.Failures = append(rep.Failures, Failure{Item: item, Err: ctx.Err()})
			continue
		}
		id, err := im.api.Create(ctx, path, rec)
		if err != nil {
			im.fail(ctx, &rep, item, err)
			continue
		}
		rep.Succeeded++
		im.logger.DebugContext(ctx, "Record created", attr.String("path", path), attr.Int64("id", id))
	}
	return rep
}

func (im *Importer) fail(ctx context.Context, rep *Report, item string, err error) {
	rep.Failures = append(rep.Failures, Failure{Item: item, Err: err})
	im.logger.WarnContext(ctx, "Import item failed", attr.String("item", item), attr.Error(err))
}
