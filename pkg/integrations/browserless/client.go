package browserless

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chromepdf/pkg/buildinfo"
	"github.com/matzehuels/chromepdf/pkg/cache"
	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/httputil"
	"github.com/matzehuels/chromepdf/pkg/integrations"
	"github.com/matzehuels/chromepdf/pkg/observability"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

const (
	// DefaultAPIURL is the hosted browserless service.
	DefaultAPIURL = "https://chrome.browserless.io"

	// PDFEndpoint is the PDF route of current browserless releases.
	PDFEndpoint = "/chrome/pdf"

	// LegacyPDFEndpoint is the PDF route of older self-hosted deployments.
	LegacyPDFEndpoint = "/pdf"

	// RequestIDHeader carries a per-request UUID for correlating logs.
	RequestIDHeader = "X-Request-ID"
)

// Client renders documents through the browserless API.
type Client struct {
	http     *integrations.Client
	hc       *http.Client
	apiKey   string
	apiURL   string
	endpoint string
	options  *pdf.Options
	cache    cache.Cache
	cacheTTL time.Duration
	retry    httputil.Policy
	logger   *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithAPIURL sets the service base URL. A trailing slash is ignored.
func WithAPIURL(u string) Option {
	return func(c *Client) { c.apiURL = strings.TrimRight(u, "/") }
}

// WithEndpoint sets the PDF route, e.g. [LegacyPDFEndpoint].
func WithEndpoint(path string) Option {
	return func(c *Client) {
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.endpoint = path
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithCache stores rendered documents in store for ttl. A zero ttl keeps
// entries until they are evicted by the backend.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
			c.cacheTTL = ttl
		}
	}
}

// WithRetries retries transport failures and 5xx responses up to n times.
func WithRetries(n int) Option {
	return func(c *Client) { c.retry.Retries = max(n, 0) }
}

// WithRetryDelay sets the initial retry backoff.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retry.Delay = d }
}

// WithOptions replaces the client's live options with o.
func WithOptions(o *pdf.Options) Option {
	return func(c *Client) {
		if o != nil {
			c.options = o
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the service. An empty apiKey sends no token,
// which suits self-hosted deployments without authentication.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		apiURL:   DefaultAPIURL,
		endpoint: PDFEndpoint,
		options:  pdf.New(),
		cache:    cache.NewNullCache(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = integrations.NewClient(c.hc, map[string]string{"User-Agent": buildinfo.UserAgent()})
	return c
}

// Options returns the client's live options. Changes apply to later renders.
func (c *Client) Options() *pdf.Options { return c.options }

// EndpointURL returns the request URL without credentials.
func (c *Client) EndpointURL() string { return c.apiURL + c.endpoint }

// RenderContent renders inline HTML with the live options.
func (c *Client) RenderContent(ctx context.Context, content string) ([]byte, error) {
	return c.Render(ctx, c.options, pdf.HTML(content))
}

// RenderURL renders the page at u with the live options.
func (c *Client) RenderURL(ctx context.Context, u string) ([]byte, error) {
	return c.Render(ctx, c.options, pdf.URL(u))
}

// RenderFile reads a local HTML file and renders its content.
func (c *Client) RenderFile(ctx context.Context, path string) ([]byte, error) {
	if err := errs.ValidateFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, err
	}
	return c.RenderContent(ctx, string(data))
}

// Payload returns the request body the live options produce for t.
func (c *Client) Payload(t pdf.Target) ([]byte, error) {
	return pdf.Encode(c.options, t)
}

// Render renders t with opts instead of the live options.
func (c *Client) Render(ctx context.Context, opts *pdf.Options, t pdf.Target) ([]byte, error) {
	body, err := pdf.Encode(opts, t)
	if err != nil {
		return nil, err
	}

	mode := string(t.Mode)
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, mode)
	start := time.Now()

	doc, err := c.render(ctx, body)

	hooks.OnRenderComplete(ctx, mode, len(doc), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) render(ctx context.Context, body []byte) ([]byte, error) {
	backend := cache.BackendName(c.cache)
	cached := backend != "none"
	var key string
	if cached {
		key = cache.RenderKey(c.EndpointURL(), body)
		if doc, ok := c.lookup(ctx, backend, key); ok {
			return doc, nil
		}
	}

	reqID := uuid.NewString()
	req := integrations.Request{
		Method: http.MethodPost,
		URL:    c.EndpointURL(),
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Accept":        "application/pdf",
			RequestIDHeader: reqID,
		},
		Body: body,
	}
	if c.apiKey != "" {
		req.Query = url.Values{"token": {c.apiKey}}
	}

	c.logger.Debug("render request", "id", reqID, "url", req.URL, "bytes", len(body))
	start := time.Now()

	var doc []byte
	attempt := 0
	err := c.retry.Do(ctx, func() error {
		attempt++
		if attempt > 1 {
			c.logger.Debug("retrying render", "id", reqID, "attempt", attempt)
		}
		var err error
		doc, err = c.http.Do(ctx, req)
		return err
	})
	if err != nil {
		apiErr := newAPIError(err)
		c.logger.Debug("render failed", "id", reqID, "status", apiErr.StatusCode, "err", apiErr.Message)
		return nil, apiErr
	}
	c.logger.Debug("render complete", "id", reqID, "bytes", len(doc), "duration", time.Since(start))

	if cached {
		if err := c.cache.Set(ctx, key, doc, c.cacheTTL); err != nil {
			c.logger.Warn("cache write failed", "backend", backend, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, backend, len(doc))
		}
	}
	return doc, nil
}

func (c *Client) lookup(ctx context.Context, backend, key string) ([]byte, bool) {
	doc, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "backend", backend, "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, backend)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, backend)
	c.logger.Debug("cache hit", "backend", backend, "bytes", len(doc))
	return doc, true
}
