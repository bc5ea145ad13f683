package integrations

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// maxErrorBody caps how much of an error response is kept on a [StatusError].
const maxErrorBody = 4 << 10

var (
	// ErrNotFound is matched by a [StatusError] with a 404 status.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (DNS, TLS, connection
	// resets, client timeouts) where no response was received.
	ErrNetwork = errors.New("network error")
)

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	Code int
	Body []byte // leading bytes of the response body
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("status %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("status %d", e.Code)
}

// Message returns the response body as trimmed text, or the standard status
// text when the body is empty.
func (e *StatusError) Message() string {
	if msg := string(bytes.TrimSpace(e.Body)); msg != "" {
		return msg
	}
	return http.StatusText(e.Code)
}

// Is makes errors.Is(err, ErrNotFound) hold for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// NewHTTPClient creates an HTTP client with the given overall request
// timeout. Zero means no client-side timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
