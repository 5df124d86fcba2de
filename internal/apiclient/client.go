// Package apiclient talks to the frolf-stats REST API. It backs the importer
// CLI and the Discord bot.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response. Detail carries the server's message.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed: %d %s", e.Method, e.Path, e.Status, e.Detail)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client is a thin JSON client. Token, when set, is sent as a bearer token.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

// New returns a client for baseURL, e.g. http://localhost:8000/api/v1.
func New(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: DefaultTimeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Login exchanges credentials for an access token and stores it on c.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{"username": {email}, "password": {password}}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/login/access-token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &tok)
	if err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return errors.New("login returned no access token")
	}
	c.Token = tok.AccessToken
	return nil
}

// Get decodes the JSON response of path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post sends body as JSON and decodes the response into out, if non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(raw), out)
}

// Create posts body to a collection path and returns the new row's id.
func (c *Client) Create(ctx context.Context, path string, body any) (int64, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.Post(ctx, path, body, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Upload is one results file with the form fields of an import request.
type Upload struct {
	Filename        string
	Data            []byte
	Date            string
	CourseLayoutID  *int64
	EventSessionID  *int64
	LeagueSessionID *int64
	MaxPoints       *float64
}

// ImportResult is either a finished import summary or a queued job id.
type ImportResult struct {
	Imported  int      `json:"imported"`
	Scored    int      `json:"scored"`
	Unranked  int      `json:"unranked"`
	Skipped   int      `json:"skipped"`
	Divisions []string `json:"divisions"`
	JobID     int64    `json:"job_id"`
}

// Queued reports whether the server deferred the import to its job queue.
func (r *ImportResult) Queued() bool { return r.JobID != 0 }

// ImportResults uploads a results export to /event-results/import.
func (c *Client) ImportResults(ctx context.Context, u Upload) (*ImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", u.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, err
	}

	fields := map[string]string{"date": u.Date}
	if u.CourseLayoutID != nil {
		fields["course_layout_id"] = strconv.FormatInt(*u.CourseLayoutID, 10)
	}
	if u.EventSessionID != nil {
		fields["event_session_id"] = strconv.FormatInt(*u.EventSessionID, 10)
	}
	if u.LeagueSessionID != nil {
		fields["league_session_id"] = strconv.FormatInt(*u.LeagueSessionID, 10)
	}
	if u.MaxPoints != nil {
		fields["max_points"] = strconv.FormatFloat(*u.MaxPoints, 'f', -1, 64)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out ImportResult
	if err := c.do(ctx, http.MethodPost, "/event-results/import", mw.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Standing is one row of a session leaderboard.
type Standing struct {
	Username       string  `json:"username"`
	Division       string  `json:"division"`
	Points         float64 `json:"points"`
	RoundsPlayed   int     `json:"rounds_played"`
	BestRoundTotal *int    `json:"best_round_total"`
}

// Standings fetches the leaderboard of an event session. An empty division
// returns every division.
func (c *Client) Standings(ctx context.Context, sessionID int64, division string) ([]Standing, error) {
	path := "/standings/" + strconv.FormatInt(sessionID, 10)
	if division != "" {
		path += "?" + url.Values{"division": {division}}.Encode()
	}
	var out []Standing
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Median fetches the median round total. It returns nil when no round
// matches.
func (c *Client) Median(ctx context.Context, sessionID *int64, division string) (*float64, error) {
	q := url.Values{}
	if sessionID != nil {
		q.Set("event_session_id", strconv.FormatInt(*sessionID, 10))
	}
	if division != "" {
		q.Set("division", division)
	}
	path := "/event-results/median"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		MedianRoundScore *float64 `json:"median_round_score"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.MedianRoundScore, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		} else {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
