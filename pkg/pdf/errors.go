package pdf

import (
	"fmt"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
)

// EncodingError reports that the assembled options could not be represented
// as JSON. It is always returned before any network I/O happens.
type EncodingError struct {
	Field string // wire path of the offending value, empty if unknown
	Err   error
}

func (e *EncodingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to encode JSON data: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("failed to encode JSON data: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// ErrorCode reports [errs.ErrCodeEncoding].
func (e *EncodingError) ErrorCode() errs.Code { return errs.ErrCodeEncoding }
