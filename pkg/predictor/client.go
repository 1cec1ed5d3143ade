package predictor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-ileso/pkg/contract"
	"github.com/goliatone/go-ileso/pkg/model"
)

// DefaultURL is the public prediction endpoint.
const DefaultURL = "https://backend-aprendizado-de-maquinas-production.up.railway.app/prever"

// ResponseField is the response property holding the probability.
const ResponseField = "probabilidade_ileso"

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each call. Zero disables the client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithContract checks payloads and responses against ct. Passing nil turns
// the contract checks off; the probability is still checked.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
		c.contractSet = true
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client posts accident payloads to the prediction endpoint. It performs
// exactly one request per call and never retries. A Client is safe for
// concurrent use.
type Client struct {
	url         string
	http        *http.Client
	timeout     time.Duration
	contract    *contract.Contract
	contractSet bool
	logger      *slog.Logger
	userAgent   string
}

// New builds a client for endpoint. An empty endpoint selects DefaultURL.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("predictor: parse endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("predictor: endpoint %q must be an absolute http(s) URL", endpoint)
	}

	c := &Client{
		url:       endpoint,
		http:      &http.Client{},
		timeout:   defaultTimeout,
		logger:    slog.Default(),
		userAgent: "go-ileso",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !c.contractSet {
		ct, err := contract.Default()
		if err != nil {
			return nil, fmt.Errorf("predictor: %w", err)
		}
		c.contract = ct
	}
	return c, nil
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// Predict posts payload and returns the probability of leaving the accident
// unharmed, in [0,1].
func (c *Client) Predict(ctx context.Context, payload model.Payload) (float64, error) {
	if c.contract != nil {
		if err := c.contract.ValidateRequest(payload); err != nil {
			var violation *contract.Violation
			perr := &PayloadError{Err: err}
			if errors.As(err, &violation) {
				perr.Fields = violation.Properties()
			}
			return 0, perr
		}
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return 0, &PayloadError{Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, &NetworkError{Op: "build request", URL: c.url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Debug("prediction request failed", "url", c.url, "duration", duration, "error", err)
		return 0, &NetworkError{Op: "POST", URL: c.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, &NetworkError{Op: "read response", URL: c.url, StatusCode: resp.StatusCode, Err: err}
	}
	c.logger.Debug("prediction request completed", "url", c.url, "status", resp.StatusCode, "duration", duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := ParseRemoteErrors(raw)
		nerr := &NetworkError{
			Op:         "POST",
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Fields:     remote.Fields,
			Form:       remote.Form,
		}
		if len(remote.Form) > 0 {
			nerr.Message = strings.Join(remote.Form, "; ")
		}
		return 0, nerr
	}

	return c.decode(raw)
}

func (c *Client) decode(raw []byte) (float64, error) {
	var generic any
	if err := sonic.Unmarshal(raw, &generic); err != nil {
		return 0, &ResponseShapeError{Reason: "body is not JSON", Body: truncate(raw), Err: err}
	}
	if c.contract != nil {
		if err := c.contract.ValidateResponse(generic); err != nil {
			return 0, &ResponseShapeError{Reason: "body does not match contract", Body: truncate(raw), Err: err}
		}
	}

	obj, ok := generic.(map[string]any)
	if !ok {
		return 0, &ResponseShapeError{Reason: "body is not an object", Body: truncate(raw)}
	}
	value, ok := obj[ResponseField]
	if !ok {
		return 0, &ResponseShapeError{Reason: ResponseField + " is missing", Body: truncate(raw)}
	}
	p, ok := value.(float64)
	if !ok {
		return 0, &ResponseShapeError{Reason: fmt.Sprintf("%s is %T, want number", ResponseField, value), Body: truncate(raw)}
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, &ResponseShapeError{Reason: fmt.Sprintf("%s %v is outside [0,1]", ResponseField, p), Body: truncate(raw)}
	}
	return p, nil
}

func truncate(raw []byte) string {
	const limit = 512
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
