package pdf

import (
	"math"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
)

// Settings is a flat, serializable set of option overrides. Nil fields leave
// the target Options untouched, so Settings can be layered: config file
// first, then per-request or command-line values.
//
// Margin uses CSS shorthand (see [ParseMargin]); the per-side fields are
// applied after it and win over it.
type Settings struct {
	Format            *string  `json:"format,omitempty" toml:"format"`
	Margin            []string `json:"margin,omitempty" toml:"margin"`
	MarginTop         *string  `json:"marginTop,omitempty" toml:"margin_top"`
	MarginRight       *string  `json:"marginRight,omitempty" toml:"margin_right"`
	MarginBottom      *string  `json:"marginBottom,omitempty" toml:"margin_bottom"`
	MarginLeft        *string  `json:"marginLeft,omitempty" toml:"margin_left"`
	PrintBackground   *bool    `json:"printBackground,omitempty" toml:"print_background"`
	WaitUntil         *string  `json:"waitUntil,omitempty" toml:"wait_until"`
	PageRanges        *string  `json:"pageRanges,omitempty" toml:"page_ranges"`
	EmulateMedia      *string  `json:"emulateMedia,omitempty" toml:"emulate_media"`
	Scale             *float64 `json:"scale,omitempty" toml:"scale"`
	Header            *string  `json:"header,omitempty" toml:"header"`
	Footer            *string  `json:"footer,omitempty" toml:"footer"`
	PreferCSSPageSize *bool    `json:"preferCSSPageSize,omitempty" toml:"prefer_css_page_size"`
	Landscape         *bool    `json:"landscape,omitempty" toml:"landscape"`
	Width             *string  `json:"width,omitempty" toml:"width"`
	Height            *string  `json:"height,omitempty" toml:"height"`
	SafeMode          *bool    `json:"safeMode,omitempty" toml:"safe_mode"`
	Rotate            *int     `json:"rotate,omitempty" toml:"rotate"`
	Timeout           *int     `json:"timeout,omitempty" toml:"timeout"`
}

// Validate reports settings Apply cannot honor. It does not second-guess
// values the service validates (format names, CSS lengths, event names).
func (s *Settings) Validate() error {
	if s.Margin != nil {
		if _, err := ParseMargin(s.Margin...); err != nil {
			return err
		}
	}
	if s.Format != nil && *s.Format == "" {
		return errs.New(errs.ErrCodeInvalidInput, "format cannot be empty")
	}
	if s.Scale != nil && (math.IsNaN(*s.Scale) || math.IsInf(*s.Scale, 0)) {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be a finite number")
	}
	if s.Timeout != nil && *s.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "timeout cannot be negative: %d", *s.Timeout)
	}
	return nil
}

// Apply copies every populated field onto o and returns o. A margin
// shorthand ParseMargin rejects and an empty format are ignored; call
// [Settings.Validate] first to surface them.
func (s *Settings) Apply(o *Options) *Options {
	if s == nil {
		return o
	}
	if s.Format != nil && *s.Format != "" {
		o.SetFormat(*s.Format)
	}
	if s.Margin != nil {
		if m, err := ParseMargin(s.Margin...); err == nil {
			o.SetMargin(m)
		}
	}
	if s.MarginTop != nil {
		o.SetMarginTop(s.MarginTop)
	}
	if s.MarginRight != nil {
		o.SetMarginRight(s.MarginRight)
	}
	if s.MarginBottom != nil {
		o.SetMarginBottom(s.MarginBottom)
	}
	if s.MarginLeft != nil {
		o.SetMarginLeft(s.MarginLeft)
	}
	if s.PrintBackground != nil {
		o.SetPrintBackground(*s.PrintBackground)
	}
	if s.WaitUntil != nil {
		o.SetWaitUntil(s.WaitUntil)
	}
	if s.PageRanges != nil {
		o.SetPageRanges(s.PageRanges)
	}
	if s.EmulateMedia != nil {
		o.SetMediaEmulation(s.EmulateMedia)
	}
	if s.Scale != nil {
		o.SetScale(s.Scale)
	}
	if s.Header != nil {
		o.SetHeader(s.Header)
	}
	if s.Footer != nil {
		o.SetFooter(s.Footer)
	}
	if s.PreferCSSPageSize != nil {
		o.SetPreferCSSPageSize(s.PreferCSSPageSize)
	}
	if s.Landscape != nil {
		o.SetLandscape(s.Landscape)
	}
	if s.Width != nil {
		o.SetWidth(s.Width)
	}
	if s.Height != nil {
		o.SetHeight(s.Height)
	}
	if s.SafeMode != nil {
		o.SetSafeMode(*s.SafeMode)
	}
	if s.Rotate != nil {
		o.SetRotation(s.Rotate)
	}
	if s.Timeout != nil {
		o.SetTimeout(s.Timeout)
	}
	return o
}
