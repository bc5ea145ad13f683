package integrations

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/chromepdf/pkg/httputil"
	"github.com/matzehuels/chromepdf/pkg/observability"
)

// Client provides shared HTTP functionality for remote service clients.
// It applies default headers, classifies failures and reports every
// exchange to the registered [observability.HTTPHooks].
//
// Client makes a single attempt per call. Transient failures come back
// marked with [httputil.RetryableError] so callers that opt in to retries
// can drive them through [httputil.Retry].
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client using hc (or a client without timeout when hc
// is nil) and default headers applied to every request.
// Pass nil for headers if no default headers are needed.
func NewClient(hc *http.Client, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient(0)
	}
	return &Client{
		http:    hc,
		headers: headers,
	}
}

// Request describes one HTTP exchange.
type Request struct {
	Method  string            // defaults to GET
	URL     string            // absolute URL; may already carry a query
	Query   url.Values        // merged into the URL's query
	Headers map[string]string // override client defaults for the same key
	Body    []byte
}

// Do performs req and returns the full response body of a 2xx response.
//
// Failures are reported as:
//   - ErrNetwork (wrapping the transport error) when no response arrived
//   - *StatusError for any other status; 404 also matches ErrNotFound
//
// Network errors and 5xx responses are wrapped in [httputil.RetryableError],
// except when ctx itself is done.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	method, host, path := httpReq.Method, httpReq.URL.Host, httpReq.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		netErr := fmt.Errorf("%w: %w", ErrNetwork, redact(err))
		if ctx.Err() != nil {
			return nil, netErr
		}
		return nil, httputil.Retryable(netErr)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: reading response: %w", ErrNetwork, err))
	}

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			q.Del(k)
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}

func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	err := &StatusError{Code: code, Body: body}
	if code >= 500 {
		return httputil.Retryable(err)
	}
	return err
}

// redact strips the query string from URLs embedded in transport errors so
// credentials passed as query parameters never reach logs.
func redact(err error) error {
	if ue, ok := err.(*url.Error); ok {
		if u, perr := url.Parse(ue.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
		}
	}
	return err
}
