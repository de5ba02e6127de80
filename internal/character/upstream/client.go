// Package upstream talks to the Rick and Morty character API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rickmorty/internal/character/metrics"
	"rickmorty/internal/character/models"
	"rickmorty/internal/platform/tracer"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 10 << 20
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues GET requests against the character API and decodes the
// responses. It holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	client  HTTPDoer
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.client = doer
	}
}

// WithTimeout bounds every upstream call. Zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation of upstream calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for upstream spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a client for the API rooted at baseURL,
// e.g. "https://rickandmortyapi.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Fetch performs GET {base}/{path}?{query} and decodes the body.
// Transport failures and non-2xx responses fail with *models.UpstreamError;
// malformed bodies fail with *models.DecodeError.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (payload *Payload, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanUpstreamFetch,
		tracer.String(tracer.AttrUpstreamPath, path),
	)
	defer func() { span.End(err) }()

	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		elapsed := time.Since(start)
		span.SetAttributes(tracer.Duration(tracer.AttrUpstreamMillis, elapsed))
		if c.metrics != nil {
			c.metrics.ObserveUpstreamRequest(endpointLabel(path), outcome, elapsed.Seconds())
		}
	}()

	body, status, err := c.get(ctx, path, query)
	if status != 0 {
		span.SetAttributes(tracer.Int(tracer.AttrUpstreamStatus, status))
	}
	if err != nil {
		outcome = classify(err)
		span.SetAttributes(tracer.Bool(tracer.AttrUpstreamTimeout, outcome == metrics.OutcomeTimeout))
		c.logger.WarnContext(ctx, "upstream request failed",
			"path", path,
			"status", status,
			"error", err,
		)
		return nil, err
	}

	payload, err = Decode(body)
	if err != nil {
		outcome = metrics.OutcomeDecodeError
		c.logger.WarnContext(ctx, "upstream response rejected",
			"path", path,
			"error", err,
		)
		return nil, err
	}

	decoded := len(payload.Results)
	if payload.Kind == KindCharacter {
		decoded = 1
	}
	if c.metrics != nil {
		c.metrics.AddCharactersDecoded(decoded)
	}
	attrs := []tracer.Attribute{tracer.Int(tracer.AttrResultCount, decoded)}
	if payload.Info != nil {
		attrs = append(attrs, tracer.Int(tracer.AttrUpstreamTotal, payload.Info.Count))
	}
	span.AddEvent(tracer.EventUpstreamDecoded, attrs...)

	c.logger.DebugContext(ctx, "upstream request completed",
		"path", path,
		"status", status,
		"decoded", decoded,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return payload, nil
}

// Health reports whether the API root answers with a 2xx status.
func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.get(ctx, "", nil)
	return err
}

// get returns the body of a successful response along with its status code.
// The status code is zero when no response was received.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path, query), nil)
	if err != nil {
		return nil, 0, &models.UpstreamError{Path: path, Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &models.UpstreamError{Path: path, Timeout: isTimeout(ctx, err), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, &models.UpstreamError{Path: path, Timeout: isTimeout(ctx, err), Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &models.UpstreamError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Cause:      errors.New(upstreamMessage(resp.StatusCode, body)),
		}
	}
	return body, resp.StatusCode, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// upstreamMessage extracts the {"error": "..."} message the API sends with
// failures, falling back to the status text.
func upstreamMessage(status int, body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return http.StatusText(status)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func classify(err error) string {
	var upstreamErr *models.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return metrics.OutcomeTransportError
	}
	switch {
	case upstreamErr.Timeout:
		return metrics.OutcomeTimeout
	case upstreamErr.StatusCode != 0:
		return metrics.OutcomeHTTPError
	default:
		return metrics.OutcomeTransportError
	}
}

// endpointLabel collapses ids out of a path so metric labels stay bounded:
// "character/42" becomes "character/{id}".
func endpointLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 1 {
		return segments[0] + "/{id}"
	}
	if segments[0] == "" {
		return "root"
	}
	return segments[0]
}
