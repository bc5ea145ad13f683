package pdf

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"unicode/utf8"
)

// Document is an assembled request payload. Key order carries no meaning.
type Document map[string]any

var (
	errInvalidUTF8 = errors.New("invalid UTF-8")
	errNonFinite   = errors.New("non-finite number")
)

// Assemble builds the payload for o and t.
//
// Inclusion rules:
//   - options.format and safeMode are always present.
//   - options.printBackground is present only when it differs from
//     [DefaultPrintBackground], i.e. only as false.
//   - options.displayHeaderFooter is present only when true.
//   - options.margin is present only if a side is set and non-empty, and then
//     holds only those sides.
//   - gotoOptions is present only if waitUntil or timeout is set.
//   - Every other field is present only when set.
//   - The target's html or url key is merged last.
//
// Assemble does not validate values; the service is authoritative on them.
func Assemble(o *Options, t Target) (Document, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	pdfOptions := map[string]any{"format": o.format}
	if o.displayHeaderFooter {
		pdfOptions["displayHeaderFooter"] = true
	}
	putString(pdfOptions, "footerTemplate", o.footer)
	putString(pdfOptions, "headerTemplate", o.header)
	putBool(pdfOptions, "landscape", o.landscape)
	if margin := o.Margin().sides(); len(margin) > 0 {
		pdfOptions["margin"] = margin
	}
	putString(pdfOptions, "pageRanges", o.pageRanges)
	putBool(pdfOptions, "preferCSSPageSize", o.preferCSSPageSize)
	if o.printBackground != DefaultPrintBackground {
		pdfOptions["printBackground"] = o.printBackground
	}
	if o.scale != nil {
		pdfOptions["scale"] = *o.scale
	}
	putString(pdfOptions, "width", o.width)
	putString(pdfOptions, "height", o.height)

	doc := Document{
		"options":  pdfOptions,
		"safeMode": o.safeMode,
	}

	gotoOptions := map[string]any{}
	putString(gotoOptions, "waitUntil", o.waitUntil)
	if o.timeout != nil {
		gotoOptions["timeout"] = *o.timeout
	}
	if len(gotoOptions) > 0 {
		doc["gotoOptions"] = gotoOptions
	}

	if o.rotate != nil {
		doc["rotate"] = *o.rotate
	}
	putString(doc, "emulateMedia", o.emulateMedia)

	doc[string(t.Mode)] = t.Value
	return doc, nil
}

// Encode assembles the payload for o and t and encodes it as JSON.
// Any failure other than an invalid target is an [*EncodingError].
func Encode(o *Options, t Target) ([]byte, error) {
	doc, err := Assemble(o, t)
	if err != nil {
		return nil, err
	}
	if err := checkEncodable("", doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // templates and content are HTML
	if err := enc.Encode(doc); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// checkEncodable rejects values encoding/json would silently rewrite
// (invalid UTF-8) or refuse (NaN, Inf), reporting the wire path.
func checkEncodable(path string, v any) error {
	switch v := v.(type) {
	case string:
		if !utf8.ValidString(v) {
			return &EncodingError{Field: path, Err: errInvalidUTF8}
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &EncodingError{Field: path, Err: errNonFinite}
		}
	case Document:
		return checkEncodable(path, map[string]any(v))
	case map[string]any:
		for k, child := range v {
			p := k
			if path != "" {
				p = path + "." + k
			}
			if err := checkEncodable(p, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
