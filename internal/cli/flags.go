package cli

import (
	"os"
	"strings"

	"github.com/spf13/pflag"

	errs "github.com/matzehuels/chromepdf/pkg/errors"
	"github.com/matzehuels/chromepdf/pkg/pdf"
)

// optionFlags holds the render option flags shared by every render command.
// Only flags the user actually set are applied, so an omitted flag leaves
// the configured value (or the service default) in place.
type optionFlags struct {
	format            string
	margin            string
	marginTop         string
	marginRight       string
	marginBottom      string
	marginLeft        string
	noBackground      bool
	waitUntil         string
	pageRanges        string
	emulateMedia      string
	scale             float64
	header            string
	footer            string
	preferCSSPageSize bool
	landscape         bool
	width             string
	height            string
	safeMode          bool
	rotate            int
	timeout           int
}

func (o *optionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.format, "format", "", "paper format: A4 (default), Letter, Legal, A3, ...")
	fs.StringVar(&o.margin, "margin", "", `CSS margin shorthand, e.g. "1cm" or "1cm 2cm"`)
	fs.StringVar(&o.marginTop, "margin-top", "", "top margin (CSS length)")
	fs.StringVar(&o.marginRight, "margin-right", "", "right margin (CSS length)")
	fs.StringVar(&o.marginBottom, "margin-bottom", "", "bottom margin (CSS length)")
	fs.StringVar(&o.marginLeft, "margin-left", "", "left margin (CSS length)")
	fs.BoolVar(&o.noBackground, "no-background", false, "do not print background graphics")
	fs.StringVar(&o.waitUntil, "wait-until", "", "navigation event to wait for: load, domcontentloaded, networkidle0, networkidle2")
	fs.StringVar(&o.pageRanges, "page-ranges", "", `pages to include, e.g. "1-3,5"`)
	fs.StringVar(&o.emulateMedia, "emulate-media", "", "CSS media type to emulate: print or screen")
	fs.Float64Var(&o.scale, "scale", 1, "rendering scale")
	fs.StringVar(&o.header, "header", "", "header HTML template, or @file to read it from a file")
	fs.StringVar(&o.footer, "footer", "", "footer HTML template, or @file to read it from a file")
	fs.BoolVar(&o.preferCSSPageSize, "prefer-css-page-size", false, "let CSS @page size win over format, width and height")
	fs.BoolVar(&o.landscape, "landscape", false, "landscape orientation")
	fs.StringVar(&o.width, "width", "", "paper width (CSS length)")
	fs.StringVar(&o.height, "height", "", "paper height (CSS length)")
	fs.BoolVar(&o.safeMode, "safe-mode", false, "render in safe mode (slower, for very large documents)")
	fs.IntVar(&o.rotate, "rotate", 0, "rotate the document by degrees (90, 180, 270)")
	fs.IntVar(&o.timeout, "timeout", 0, "navigation timeout in milliseconds")
}

// settings converts the changed flags into pdf settings.
func (o *optionFlags) settings(fs *pflag.FlagSet) (*pdf.Settings, error) {
	s := &pdf.Settings{}
	str := func(name, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return pdf.String(v)
	}
	boolean := func(name string, v bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		return pdf.Bool(v)
	}
	integer := func(name string, v int) *int {
		if !fs.Changed(name) {
			return nil
		}
		return pdf.Int(v)
	}

	s.Format = str("format", o.format)
	if fs.Changed("margin") {
		s.Margin = strings.Fields(o.margin)
	}
	s.MarginTop = str("margin-top", o.marginTop)
	s.MarginRight = str("margin-right", o.marginRight)
	s.MarginBottom = str("margin-bottom", o.marginBottom)
	s.MarginLeft = str("margin-left", o.marginLeft)
	if fs.Changed("no-background") {
		s.PrintBackground = pdf.Bool(!o.noBackground)
	}
	s.WaitUntil = str("wait-until", o.waitUntil)
	s.PageRanges = str("page-ranges", o.pageRanges)
	s.EmulateMedia = str("emulate-media", o.emulateMedia)
	if fs.Changed("scale") {
		s.Scale = pdf.Float(o.scale)
	}
	s.PreferCSSPageSize = boolean("prefer-css-page-size", o.preferCSSPageSize)
	s.Landscape = boolean("landscape", o.landscape)
	s.Width = str("width", o.width)
	s.Height = str("height", o.height)
	s.SafeMode = boolean("safe-mode", o.safeMode)
	s.Rotate = integer("rotate", o.rotate)
	s.Timeout = integer("timeout", o.timeout)

	var err error
	if fs.Changed("header") {
		if s.Header, err = readTemplate(o.header); err != nil {
			return nil, err
		}
	}
	if fs.Changed("footer") {
		if s.Footer, err = readTemplate(o.footer); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// readTemplate returns v, or the contents of the file v names with an @ prefix.
func readTemplate(v string) (*string, error) {
	path, ok := strings.CutPrefix(v, "@")
	if !ok {
		return pdf.String(v), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "template not found: %s", path)
		}
		return nil, err
	}
	return pdf.String(string(data)), nil
}
