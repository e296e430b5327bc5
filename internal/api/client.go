// Package api talks to the item catalog REST service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/catalog/internal/model"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080"

const (
	itemsPath       = "/api/items"
	headerRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
)

// Client issues exactly one HTTP request per call. No retries, no caching.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ListItems fetches the whole collection.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, itemsPath, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// GetItem fetches one item; a missing id is a *TransportError with status 404.
func (c *Client) GetItem(ctx context.Context, id model.ID) (model.Item, error) {
	var it model.Item
	err := c.do(ctx, http.MethodGet, itemPath(id), nil, &it)
	return it, err
}

// CreateItem posts a draft and returns the item as stored by the server.
func (c *Client) CreateItem(ctx context.Context, d model.Draft) (model.Item, error) {
	var it model.Item
	err := c.do(ctx, http.MethodPost, itemsPath, d, &it)
	return it, err
}

// UpdateItem replaces the item's fields and returns the server's version.
func (c *Client) UpdateItem(ctx context.Context, id model.ID, d model.Draft) (model.Item, error) {
	var it model.Item
	err := c.do(ctx, http.MethodPut, itemPath(id), d, &it)
	return it, err
}

// DeleteItem removes the item. A 204 with no body is success.
func (c *Client) DeleteItem(ctx context.Context, id model.ID) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id model.ID) string {
	return itemsPath + "/" + url.PathEscape(id.String())
}

// do performs one request. in is JSON-encoded when non-nil; out is decoded
// from a 2xx body when non-nil and the status is not 204.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(headerRequestID, reqID)
	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", reqID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &TransportError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	rb := &bodyReader{r: resp.Body}
	if err := json.NewDecoder(rb).Decode(out); err != nil {
		if rb.err != nil {
			return &NetworkError{Method: method, Path: path, Err: rb.err}
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// bodyReader remembers a failed read so a connection dropped mid-body is
// told apart from a malformed one.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		b.err = err
	}
	return n, err
}
