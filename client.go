package pgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pgrest-dev/pgrest/cache"
	"github.com/pgrest-dev/pgrest/engine/render"
)

// Client executes rendered PostgREST requests against a live PostgREST
// instance (SPEC_FULL.md §4.10), mirroring the teacher's Client.Query shape
// (parse, translate, execute, return rows) with "translate" replaced by
// Translate/RenderHTTP and "execute" an HTTP round trip instead of a SQL
// driver call.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *cache.Cache
	logger  *slog.Logger
}

// ClientOption configures a Client built by NewClient.
type ClientOption func(*Client)

// WithHTTPClient overrides the *http.Client used for requests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithCache attaches a result cache. A nil cache (the default) disables
// caching; every Client method works uncached.
func WithCache(ch *cache.Cache) ClientOption {
	return func(c *Client) { c.cache = ch }
}

// WithLogger overrides the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient wraps a PostgREST instance at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		http:    http.DefaultClient,
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do renders sql (if the cache misses) and executes it against the wrapped
// PostgREST instance, returning the raw response body.
func (c *Client) Do(ctx context.Context, sql string, opts render.Options) ([]byte, error) {
	req, err := c.render(ctx, sql, opts)
	if err != nil {
		c.logger.Error("render failed", "sql", sql, "error", err)
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.FullPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("request failed", "path", req.FullPath, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("postgrest: %s: %s", resp.Status, bytes.TrimSpace(body))
		c.logger.Error("request returned an error status", "path", req.FullPath, "status", resp.Status)
		return nil, err
	}

	c.logger.Info("request succeeded", "path", req.FullPath, "status", resp.Status)
	return body, nil
}

// DoJSON is Do plus a decode of the response body into the shape PostgREST
// returns a SELECT result set in.
func (c *Client) DoJSON(ctx context.Context, sql string, opts render.Options) ([]map[string]any, error) {
	body, err := c.Do(ctx, sql, opts)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}

func (c *Client) render(ctx context.Context, sql string, opts render.Options) (*render.HTTPRequest, error) {
	if c.cache != nil {
		if req, ok, err := c.cache.Get(ctx, sql, opts); err == nil && ok {
			return req, nil
		}
	}

	stmt, err := Translate(sql)
	if err != nil {
		return nil, err
	}
	req, err := render.RenderHTTP(stmt, opts)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, sql, opts, req); err != nil {
			c.logger.Error("cache put failed", "sql", sql, "error", err)
		}
	}
	return req, nil
}
