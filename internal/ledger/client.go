package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/ledgerdesk/internal/metrics"
)

// API defines the ledger endpoints ledgerdesk consumes.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListOperators(ctx context.Context, role Role) ([]Operator, error)
	AddOperator(ctx context.Context, name string, channels []string) (int64, error)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) error
	FetchStats(ctx context.Context) (Stats, error)
	ListRecords(ctx context.Context, query RecordQuery) ([]Record, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the ledger HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

const (
	defaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "ledgerdesk/0.1"
	maxErrorBody     = 64 * 1024
)

// Endpoint paths, relative to the base URL.
const (
	PathCustomerOperators = "/customer/operators/list"
	PathAdminOperators    = "/admin/operators/list"
	PathAddOperator       = "/customer/operators/add"
	PathUpdateRecord      = "/update_record"
	PathStats             = "/customer/stats"
	PathRecords           = "/customer/records/list"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL (for example
// "http://localhost:5000/api"). The base path is preserved.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListOperators retrieves the operator list visible to role.
func (c *Client) ListOperators(ctx context.Context, role Role) ([]Operator, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	path := PathCustomerOperators
	if role == RoleAdmin {
		path = PathAdminOperators
	}
	var payload OperatorListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return nil, err
	}
	if payload.Operators == nil {
		return []Operator{}, nil
	}
	return payload.Operators, nil
}

// AddOperator creates an operator and returns its server-issued id.
func (c *Client) AddOperator(ctx context.Context, name string, channels []string) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	body := AddOperatorRequest{Name: name, Channels: channels}
	var payload AddOperatorResponse
	if err := c.do(ctx, http.MethodPost, PathAddOperator, nil, body, &payload); err != nil {
		return 0, err
	}
	if !payload.Success {
		return 0, &APIError{
			Method:  http.MethodPost,
			Path:    PathAddOperator,
			Status:  http.StatusOK,
			Message: strings.TrimSpace(payload.Error),
		}
	}
	return payload.OperatorID, nil
}

// UpdateRecord sets a record's status and attribution. Any 2xx response
// counts as success.
func (c *Client) UpdateRecord(ctx context.Context, req UpdateRecordRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if req.RecordID <= 0 {
		return Validation("record id required")
	}
	var payload UpdateRecordResponse
	if err := c.do(ctx, http.MethodPost, PathUpdateRecord, nil, req, &payload); err != nil {
		return err
	}
	if !payload.Success {
		c.logger.Debug("update_record returned 2xx without success flag", "record_id", req.RecordID)
	}
	return nil
}

// FetchStats retrieves the completed/pending totals.
func (c *Client) FetchStats(ctx context.Context) (Stats, error) {
	if c == nil {
		return Stats{}, fmt.Errorf("client is nil")
	}
	var payload Stats
	if err := c.do(ctx, http.MethodGet, PathStats, nil, nil, &payload); err != nil {
		return Stats{}, err
	}
	return payload, nil
}

// ListRecords retrieves records matching query.
func (c *Client) ListRecords(ctx context.Context, query RecordQuery) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if start := strings.TrimSpace(query.StartDate); start != "" {
		values.Set("start_date", start)
	}
	if end := strings.TrimSpace(query.EndDate); end != "" {
		values.Set("end_date", end)
	}
	if query.Status != "" {
		values.Set("status", string(query.Status))
	}
	var payload RecordListResponse
	if err := c.do(ctx, http.MethodGet, PathRecords, values, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Records, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) (err error) {
	reqURL := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	endpoint := endpointLabel(path)
	started := time.Now()
	defer func() {
		outcome := Classify(err).String()
		if err == nil {
			outcome = "ok"
		}
		elapsed := time.Since(started)
		c.metrics.ObserveRequest(endpoint, outcome, elapsed)
		c.logger.Debug("api request",
			"method", method,
			"path", path,
			"request_id", requestID,
			"outcome", outcome,
			"elapsed", elapsed)
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failed response, if present.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Message)
}

func endpointLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	return strings.ReplaceAll(trimmed, "/", "_")
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
