package pdf

// Service defaults. Fields holding these values are either always emitted
// (format, safeMode) or omitted from the payload (printBackground).
const (
	DefaultFormat          = "A4"
	DefaultPrintBackground = true
	DefaultSafeMode        = false
)

// Options holds the rendering options sent to the PDF service.
//
// The zero value is not ready for use; create values with [New].
type Options struct {
	format string

	marginTop    *string
	marginRight  *string
	marginBottom *string
	marginLeft   *string

	printBackground   bool
	waitUntil         *string // navigation lifecycle event, e.g. "networkidle0"
	pageRanges        *string // e.g. "1,2,5-7"
	emulateMedia      *string // "print" or "screen"
	scale             *float64
	preferCSSPageSize *bool
	landscape         *bool
	width             *string
	height            *string

	header              *string
	footer              *string
	displayHeaderFooter bool // derived, see syncHeaderFooter

	safeMode bool
	rotate   *int // degrees
	timeout  *int // navigation timeout in milliseconds
}

// New returns Options populated with the service defaults.
func New() *Options {
	return &Options{
		format:          DefaultFormat,
		printBackground: DefaultPrintBackground,
		safeMode:        DefaultSafeMode,
	}
}

// Clone returns a deep copy of o.
func (o *Options) Clone() *Options {
	c := *o
	c.marginTop = clonePtr(o.marginTop)
	c.marginRight = clonePtr(o.marginRight)
	c.marginBottom = clonePtr(o.marginBottom)
	c.marginLeft = clonePtr(o.marginLeft)
	c.waitUntil = clonePtr(o.waitUntil)
	c.pageRanges = clonePtr(o.pageRanges)
	c.emulateMedia = clonePtr(o.emulateMedia)
	c.scale = clonePtr(o.scale)
	c.preferCSSPageSize = clonePtr(o.preferCSSPageSize)
	c.landscape = clonePtr(o.landscape)
	c.width = clonePtr(o.width)
	c.height = clonePtr(o.height)
	c.header = clonePtr(o.header)
	c.footer = clonePtr(o.footer)
	c.rotate = clonePtr(o.rotate)
	c.timeout = clonePtr(o.timeout)
	return &c
}

// SetFormat sets the paper format keyword (A4, Letter, ...).
// The service gives a non-default format precedence over width and height.
func (o *Options) SetFormat(format string) *Options {
	o.format = format
	return o
}

// SetMargin replaces all four margins with m.
func (o *Options) SetMargin(m Margin) *Options {
	o.marginTop = clonePtr(m.Top)
	o.marginRight = clonePtr(m.Right)
	o.marginBottom = clonePtr(m.Bottom)
	o.marginLeft = clonePtr(m.Left)
	return o
}

func (o *Options) SetMarginTop(v *string) *Options {
	o.marginTop = clonePtr(v)
	return o
}

func (o *Options) SetMarginRight(v *string) *Options {
	o.marginRight = clonePtr(v)
	return o
}

func (o *Options) SetMarginBottom(v *string) *Options {
	o.marginBottom = clonePtr(v)
	return o
}

func (o *Options) SetMarginLeft(v *string) *Options {
	o.marginLeft = clonePtr(v)
	return o
}

// SetPrintBackground sets whether background graphics are rendered.
func (o *Options) SetPrintBackground(v bool) *Options {
	o.printBackground = v
	return o
}

// SetWaitUntil sets the navigation lifecycle event at which rendering starts.
func (o *Options) SetWaitUntil(v *string) *Options {
	o.waitUntil = clonePtr(v)
	return o
}

// SetPageRanges restricts the output to the given pages, e.g. "1,2,5-7".
func (o *Options) SetPageRanges(v *string) *Options {
	o.pageRanges = clonePtr(v)
	return o
}

// SetMediaEmulation sets the CSS media type to emulate ("print" or "screen").
func (o *Options) SetMediaEmulation(v *string) *Options {
	o.emulateMedia = clonePtr(v)
	return o
}

func (o *Options) SetScale(v *float64) *Options {
	o.scale = clonePtr(v)
	return o
}

// SetHeader sets the header template and recomputes displayHeaderFooter.
func (o *Options) SetHeader(v *string) *Options {
	o.header = clonePtr(v)
	o.syncHeaderFooter()
	return o
}

// SetFooter sets the footer template and recomputes displayHeaderFooter.
func (o *Options) SetFooter(v *string) *Options {
	o.footer = clonePtr(v)
	o.syncHeaderFooter()
	return o
}

// syncHeaderFooter is the only writer of displayHeaderFooter.
func (o *Options) syncHeaderFooter() {
	o.displayHeaderFooter = o.header != nil || o.footer != nil
}

// SetPreferCSSPageSize sets whether @page CSS rules take priority over
// width, height and format.
func (o *Options) SetPreferCSSPageSize(v *bool) *Options {
	o.preferCSSPageSize = clonePtr(v)
	return o
}

func (o *Options) SetLandscape(v *bool) *Options {
	o.landscape = clonePtr(v)
	return o
}

// SetWidth sets the paper width as a CSS length.
func (o *Options) SetWidth(v *string) *Options {
	o.width = clonePtr(v)
	return o
}

// SetHeight sets the paper height as a CSS length.
func (o *Options) SetHeight(v *string) *Options {
	o.height = clonePtr(v)
	return o
}

// SetSafeMode asks the service to render in safe mode, which trades speed
// for robustness on very large documents.
func (o *Options) SetSafeMode(v bool) *Options {
	o.safeMode = v
	return o
}

// SetRotation sets the rotation of the produced document in degrees.
func (o *Options) SetRotation(v *int) *Options {
	o.rotate = clonePtr(v)
	return o
}

// SetTimeout sets the service-side navigation timeout in milliseconds.
func (o *Options) SetTimeout(v *int) *Options {
	o.timeout = clonePtr(v)
	return o
}

func (o *Options) Format() string { return o.format }

// Margin returns the current margins. Unset sides are nil.
func (o *Options) Margin() Margin {
	return Margin{
		Top:    clonePtr(o.marginTop),
		Right:  clonePtr(o.marginRight),
		Bottom: clonePtr(o.marginBottom),
		Left:   clonePtr(o.marginLeft),
	}
}

func (o *Options) PrintBackground() bool     { return o.printBackground }
func (o *Options) WaitUntil() *string        { return clonePtr(o.waitUntil) }
func (o *Options) PageRanges() *string       { return clonePtr(o.pageRanges) }
func (o *Options) MediaEmulation() *string   { return clonePtr(o.emulateMedia) }
func (o *Options) Scale() *float64           { return clonePtr(o.scale) }
func (o *Options) Header() *string           { return clonePtr(o.header) }
func (o *Options) Footer() *string           { return clonePtr(o.footer) }
func (o *Options) DisplayHeaderFooter() bool { return o.displayHeaderFooter }
func (o *Options) PreferCSSPageSize() *bool  { return clonePtr(o.preferCSSPageSize) }
func (o *Options) Landscape() *bool          { return clonePtr(o.landscape) }
func (o *Options) Width() *string            { return clonePtr(o.width) }
func (o *Options) Height() *string           { return clonePtr(o.height) }
func (o *Options) SafeMode() bool            { return o.safeMode }
func (o *Options) Rotation() *int            { return clonePtr(o.rotate) }
func (o *Options) Timeout() *int             { return clonePtr(o.timeout) }
