package integrations

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chromepdf/pkg/httputil"
	"github.com/matzehuels/chromepdf/pkg/observability"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(nil, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.http.Timeout != 0 {
		t.Errorf("default client timeout = %v, want none", client.http.Timeout)
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilHeaders(t *testing.T) {
	client := NewClient(NewHTTPClient(time.Second), nil)

	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
	if client.http.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", client.http.Timeout)
	}
}

func TestClientDoPost(t *testing.T) {
	var (
		gotMethod, gotType, gotToken, gotExtra string
		gotBody                                string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotToken = r.URL.Query().Get("token")
		gotExtra = r.URL.Query().Get("keep")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte("%PDF"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), map[string]string{"Content-Type": "text/plain"})
	body, err := client.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     server.URL + "/chrome/pdf?keep=1",
		Query:   url.Values{"token": {"secret"}},
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    []byte(`{"a":1}`),
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	if string(body) != "%PDF" {
		t.Errorf("body = %q, want %%PDF", body)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, request header should override default", gotType)
	}
	if gotToken != "secret" || gotExtra != "1" {
		t.Errorf("query token=%q keep=%q, want secret and 1", gotToken, gotExtra)
	}
	if gotBody != `{"a":1}` {
		t.Errorf("request body = %q", gotBody)
	}
}

func TestClientDoDefaultsToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
	}))
	defer server.Close()

	if _, err := NewClient(server.Client(), nil).Do(context.Background(), Request{URL: server.URL}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
}

func TestClientDoAccepts2xx(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte("ok"))
		}))
		body, err := NewClient(server.Client(), nil).Do(context.Background(), Request{URL: server.URL})
		server.Close()
		if err != nil || string(body) != "ok" {
			t.Errorf("status %d: body %q, err %v", code, body, err)
		}
	}
}

func TestClientDoStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		body      string
		notFound  bool
		retryable bool
	}{
		{"bad request", http.StatusBadRequest, "invalid option", false, false},
		{"unauthorized", http.StatusUnauthorized, "", false, false},
		{"not found", http.StatusNotFound, "no such endpoint", true, false},
		{"rate limited", http.StatusTooManyRequests, "slow down", false, false},
		{"server error", http.StatusInternalServerError, "boom", false, true},
		{"bad gateway", http.StatusBadGateway, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.code)
			}))
			defer server.Close()

			_, err := NewClient(server.Client(), nil).Do(context.Background(), Request{URL: server.URL})
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is not a *StatusError", err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %d, want %d", se.Code, tt.code)
			}
			wantMsg := tt.body
			if wantMsg == "" {
				wantMsg = http.StatusText(tt.code)
			}
			if se.Message() != wantMsg {
				t.Errorf("Message() = %q, want %q", se.Message(), wantMsg)
			}
			if got := errors.Is(err, ErrNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.notFound)
			}
			if got := httputil.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestClientDoTruncatesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(strings.Repeat("x", 3*maxErrorBody)))
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), nil).Do(context.Background(), Request{URL: server.URL})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if len(se.Body) != maxErrorBody {
		t.Errorf("len(Body) = %d, want %d", len(se.Body), maxErrorBody)
	}
}

func TestClientDoNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(nil, nil).Do(context.Background(), Request{
		URL:   addr,
		Query: url.Values{"token": {"secret"}},
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !httputil.IsRetryable(err) {
		t.Error("network error should be retryable")
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks query string: %v", err)
	}
}

func TestClientDoCancelledNotRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.Client(), nil).Do(ctx, Request{URL: server.URL})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded in chain, got %v", err)
	}
	if httputil.IsRetryable(err) {
		t.Error("cancelled request should not be retryable")
	}
}

func TestClientDoInvalidURL(t *testing.T) {
	if _, err := NewClient(nil, nil).Do(context.Background(), Request{URL: "://bad"}); err == nil {
		t.Error("expected error for invalid URL")
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests, responses, errs int
	lastStatus                int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	h.responses++
	h.lastStatus = code
}
func (h *recordingHTTPHooks) OnError(context.Context, string, string, string, error) { h.errs++ }

func TestClientDoFiresHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	_, _ = NewClient(server.Client(), nil).Do(context.Background(), Request{URL: server.URL})

	if hooks.requests != 1 || hooks.responses != 1 || hooks.errs != 0 {
		t.Errorf("hooks = %+v, want one request and one response", hooks)
	}
	if hooks.lastStatus != http.StatusTeapot {
		t.Errorf("lastStatus = %d, want 418", hooks.lastStatus)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	tests := []struct {
		err  *StatusError
		want string
	}{
		{&StatusError{Code: 400, Body: []byte("  bad margin\n")}, "status 400: bad margin"},
		{&StatusError{Code: 503}, "status 503: Service Unavailable"},
		{&StatusError{Code: 599}, "status 599"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
