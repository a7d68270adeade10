package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a rejection body ends up in the error.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL    *url.URL
	http       *http.Client
	log        logging.Logger
	retries    uint64
	newBackOff func() backoff.BackOff
}

// Option tweaks an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRetries sets how many times an idempotent read is retried.
func WithRetries(n int) Option {
	return func(c *HTTPClient) {
		if n < 0 {
			n = 0
		}
		c.retries = uint64(n)
	}
}

// WithBackOff replaces the exponential backoff policy, mostly for tests.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *HTTPClient) { c.newBackOff = f }
}

// NewHTTPClient builds a client for baseURL with a per-request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log,
		retries: 3,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) ListRecords(ctx context.Context, q models.RecordQuery) ([]models.Record, error) {
	var out []models.Record
	err := c.retry(ctx, func() error {
		out = nil
		return c.do(ctx, http.MethodPost, "/records/list", q, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Record{}
	}
	return out, nil
}

func (c *HTTPClient) CreateRecord(ctx context.Context, r models.Record) error {
	r.ID = nil
	r.InstrumentAlias = ""
	return c.do(ctx, http.MethodPost, "/records", r.Normalize(), nil)
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, r models.Record) error {
	if !r.HasID() {
		return errors.New("update requires a record id")
	}
	r.InstrumentAlias = ""
	return c.do(ctx, http.MethodPost, "/records/update", r.Normalize(), nil)
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/records/"+strconv.FormatInt(id, 10)+"/delete", nil, nil)
}

func (c *HTTPClient) ListInstruments(ctx context.Context) ([]models.Instrument, error) {
	var out []models.Instrument
	err := c.retry(ctx, func() error {
		out = nil
		return c.do(ctx, http.MethodGet, "/instruments", nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// retry runs op with backoff while it fails with a network error or a 5xx.
func (c *HTTPClient) retry(ctx context.Context, op func() error) error {
	if c.retries == 0 {
		return op()
	}
	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.retries), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		var rej *RejectionError
		switch {
		case errors.Is(err, ErrUnavailable):
			return err
		case errors.As(err, &rej) && rej.Temporary():
			return err
		default:
			return backoff.Permanent(err)
		}
	}, b)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		rej := &RejectionError{StatusCode: resp.StatusCode, Message: errorMessage(msg)}
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "message", rej.Message)
		return rej
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
