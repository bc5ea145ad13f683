package browserless

import (
	"errors"
	"net/http"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/integrations"
)

// APIError reports a failed render request. StatusCode is the HTTP status
// returned by the service, or 0 when no response was received.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return "failed to render PDF: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrorCode classifies the failure for CLI output and the relay server.
func (e *APIError) ErrorCode() errs.Code {
	switch e.StatusCode {
	case 0:
		return errs.ErrCodeNetwork
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		return errs.ErrCodeRateLimited
	default:
		return errs.ErrCodeAPI
	}
}

func newAPIError(err error) *APIError {
	var se *integrations.StatusError
	if errors.As(err, &se) {
		return &APIError{StatusCode: se.Code, Message: se.Error(), Err: err}
	}
	return &APIError{Message: err.Error(), Err: err}
}
