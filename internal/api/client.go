// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the typed client for the FinanceClinics HTTP JSON API.
// Endpoint groups are flat sets of methods on Client, one per server
// operation, each returning the unwrapped payload. The client attaches a
// bearer token from the injected TokenSource and converts non-2xx responses
// into *Error values; it performs no retries and no cross-cutting side
// effects beyond that.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/traamakrishna3012/financeclinics/internal/metrics"
)

// DefaultTimeout bounds a single API round trip.
const DefaultTimeout = 30 * time.Second

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty return means no Authorization header is sent at all.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) string

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) string { return f(ctx) }

// Client talks to the FinanceClinics API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a Client for the API rooted at baseURL (e.g. "http://localhost:5000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// newRequest builds a request with auth, correlation, and content headers.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request %s %s: %w", method, path, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Header is omitted entirely when no token is available, never sent empty.
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// send executes the request and records upstream latency metrics.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(req.Method, 0, time.Since(start))
		return nil, err
	}
	metrics.ObserveUpstream(req.Method, resp.StatusCode, time.Since(start))
	return resp, nil
}

// do executes an API call. A non-nil body is encoded as JSON; a non-nil out
// receives the decoded response payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, query, reqBody, contentType)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Blob is a binary download returned untouched for the caller to serve or
// save as a file.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

// getBlob fetches a file-producing endpoint and returns the raw payload.
func (c *Client) getBlob(ctx context.Context, path string, query url.Values) (*Blob, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download from %s: %w", path, err)
	}

	return &Blob{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
	}, nil
}

// postMultipart uploads a file as multipart form data alongside extra fields.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return fmt.Errorf("writing multipart field %q: %w", key, err)
		}
	}

	part, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("creating multipart file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copying upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf, mw.FormDataContentType())
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from POST %s: %w", path, err)
		}
	}
	return nil
}

// dispositionFilename extracts the filename from a Content-Disposition header.
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
