// Package telephony is a client for the Twilio-compatible REST API that backs the
// dashboard's call logs and recordings.
package telephony

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	apiVersion = "2010-04-01"

	// maxErrorBody limits how much of an error response is read
	maxErrorBody = 4096
)

var tracer = otel.Tracer("calldash.internal.telephony")

// API is the capability surface the dashboard consumes
type API interface {
	ListCalls(ctx context.Context, limit int) ([]types.RawCall, error)
	ListRecordings(ctx context.Context, limit int) ([]types.RawRecording, error)
	GetCall(ctx context.Context, callSID string) (*types.RawCall, error)
	MediaBaseURL() string
}

// Options configures a Client
type Options struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the telephony REST API using HTTP basic auth
type Client struct {
	baseURL    string
	accountSID string
	authToken  string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new telephony client. Credentials are required.
func NewClient(opts Options, logger zerolog.Logger) (*Client, error) {
	if opts.AccountSID == "" || opts.AuthToken == "" {
		return nil, fmt.Errorf("telephony: account SID and auth token are required")
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("telephony: base URL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("telephony: invalid base URL: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		accountSID: opts.AccountSID,
		authToken:  opts.AuthToken,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "telephony").Logger(),
	}, nil
}

// MediaBaseURL returns the URL that recording resource URIs are relative to
func (c *Client) MediaBaseURL() string {
	return c.baseURL
}

// ListCalls returns the most recent calls, newest first, at most limit of them
func (c *Client) ListCalls(ctx context.Context, limit int) ([]types.RawCall, error) {
	var page callPage
	if err := c.get(ctx, "telephony.list_calls", c.accountPath("Calls.json"), pageQuery(limit), &page); err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}

	calls := make([]types.RawCall, 0, len(page.Calls))
	for _, call := range truncate(page.Calls, limit) {
		calls = append(calls, call.toRaw())
	}
	return calls, nil
}

// ListRecordings returns the most recent recordings, at most limit of them
func (c *Client) ListRecordings(ctx context.Context, limit int) ([]types.RawRecording, error) {
	var page recordingPage
	if err := c.get(ctx, "telephony.list_recordings", c.accountPath("Recordings.json"), pageQuery(limit), &page); err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	recordings := make([]types.RawRecording, 0, len(page.Recordings))
	for _, rec := range truncate(page.Recordings, limit) {
		recordings = append(recordings, rec.toRaw())
	}
	return recordings, nil
}

// GetCall fetches a single call by SID
func (c *Client) GetCall(ctx context.Context, callSID string) (*types.RawCall, error) {
	if callSID == "" {
		return nil, fmt.Errorf("get call: empty call SID")
	}

	var call callResource
	path := c.accountPath("Calls", url.PathEscape(callSID)+".json")
	if err := c.get(ctx, "telephony.get_call", path, nil, &call); err != nil {
		return nil, fmt.Errorf("get call %s: %w", callSID, err)
	}

	raw := call.toRaw()
	return &raw, nil
}

func (c *Client) accountPath(parts ...string) string {
	return "/" + apiVersion + "/Accounts/" + url.PathEscape(c.accountSID) + "/" + strings.Join(parts, "/")
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	ctx, span := tracer.Start(ctx, operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("telephony request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := parseAPIError(resp.StatusCode, body)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func pageQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("PageSize", strconv.Itoa(limit))
	}
	return q
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
