package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/storage"
)

// HTTPClient implements DataSource by calling the liftplan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// trainees live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends a request and decodes a JSON response into out. Any status other
// than want is returned as an error carrying the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, want int) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != want {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func traineePath(id uuid.UUID, suffix string) string {
	return "/api/v1/trainees/" + id.String() + suffix
}

func (c *HTTPClient) Plan(ctx context.Context) (schedule.Info, error) {
	var info schedule.Info
	err := c.do(ctx, http.MethodGet, "/api/v1/plan", nil, &info, http.StatusOK)
	return info, err
}

func (c *HTTPClient) ListTrainees(ctx context.Context) ([]storage.Record, error) {
	var recs []storage.Record
	err := c.do(ctx, http.MethodGet, "/api/v1/trainees", nil, &recs, http.StatusOK)
	return recs, err
}

func (c *HTTPClient) CreateTrainee(ctx context.Context, name string, oneRepMax map[models.Lift]float64) (storage.Record, error) {
	in := map[string]any{"name": name, "one_rep_max": oneRepMax}
	var rec storage.Record
	err := c.do(ctx, http.MethodPost, "/api/v1/trainees", in, &rec, http.StatusCreated)
	return rec, err
}

func (c *HTTPClient) Week(ctx context.Context, id uuid.UUID, week models.Week) (schedule.WeekPlan, error) {
	var plan schedule.WeekPlan
	err := c.do(ctx, http.MethodGet, traineePath(id, fmt.Sprintf("/weeks/%d", int(week))), nil, &plan, http.StatusOK)
	return plan, err
}

func (c *HTTPClient) Ladders(ctx context.Context, id uuid.UUID, lift models.Lift) (schedule.Ladders, error) {
	var l schedule.Ladders
	err := c.do(ctx, http.MethodGet, traineePath(id, "/ladders/"+lift.Key()), nil, &l, http.StatusOK)
	return l, err
}

func (c *HTTPClient) SetOneRepMax(ctx context.Context, id uuid.UUID, update map[models.Lift]float64) (storage.Record, error) {
	var rec storage.Record
	err := c.do(ctx, http.MethodPut, traineePath(id, "/one-rep-max"), update, &rec, http.StatusOK)
	return rec, err
}
