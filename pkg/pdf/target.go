package pdf

import errs "github.com/matzehuels/chromepdf/pkg/errors"

// Mode identifies what the service renders.
type Mode string

const (
	ModeHTML Mode = "html"
	ModeURL  Mode = "url"
)

// ErrInvalidTarget is returned for a Target without content or URL.
var ErrInvalidTarget error = errs.New(errs.ErrCodeInvalidTarget, "render target must be non-empty html or url")

// Target is the render-mode-specific part of a payload: either inline HTML
// or a URL the service navigates to. Exactly one is sent.
type Target struct {
	Mode  Mode
	Value string
}

// HTML returns a Target that renders content.
func HTML(content string) Target { return Target{Mode: ModeHTML, Value: content} }

// URL returns a Target that renders the page at url.
func URL(url string) Target { return Target{Mode: ModeURL, Value: url} }

// Validate checks that t names a known mode and carries a value.
func (t Target) Validate() error {
	if (t.Mode != ModeHTML && t.Mode != ModeURL) || t.Value == "" {
		return ErrInvalidTarget
	}
	return nil
}
