// Package api talks to the task tracker REST service.
package api

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

	"github.com/google/uuid"

	"github.com/Joseda-hg/lazytracker/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// Client maps each remote capability onto one method. It never retries or
// caches; every failure is returned to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logger.Get(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Error is returned for any non-2xx response.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decodeJSON(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

// send performs req and turns non-2xx responses into *Error. The caller owns
// the body of a successful response.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	log := c.log.With("method", req.Method, "path", req.URL.Path, "request_id", req.Header.Get(requestIDHeader))
	log.Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("api request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := &Error{StatusCode: resp.StatusCode, Method: req.Method, Path: req.URL.Path}
		apiErr.Detail = readDetail(resp.Body)
		log.Warn("api request rejected", "status", resp.StatusCode, "detail", apiErr.Detail)
		return nil, apiErr
	}

	log.Debug("api response", "status", resp.StatusCode)
	return resp, nil
}

func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return detail
	}
	// Validation errors carry a structured detail; keep it readable as JSON.
	return string(body.Detail)
}
