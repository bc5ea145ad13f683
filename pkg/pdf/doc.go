// Package pdf models the rendering options of a headless-browser PDF service
// and assembles them into the JSON document the service expects.
//
// # Options
//
// [Options] holds every rendering option as an independent field. Fields the
// service treats as optional are nullable: setters take a pointer and nil
// clears the field. The [String], [Bool], [Int] and [Float] helpers build
// pointers inline:
//
//	opts := pdf.New().
//	    SetFormat("Letter").
//	    SetMargin(pdf.SymmetricMargin("1cm", "2cm")).
//	    SetFooter(pdf.String(`<span class="pageNumber"></span>`)).
//	    SetLandscape(pdf.Bool(true))
//
// Setters mutate in place and return the receiver. An Options value is not
// safe for concurrent mutation; use [Options.Clone] to hand a snapshot to
// another goroutine.
//
// The displayHeaderFooter flag is never set directly. It is recomputed from
// the header and footer templates every time either of them changes.
//
// # Payload
//
// [Assemble] turns an Options value plus a [Target] (inline HTML or a URL)
// into a [Document]. Only fields that are set, or that deviate from the
// service defaults, are included:
//
//	{"options":{"format":"A4"},"safeMode":false,"html":"<p>hi</p>"}
//
// [Encode] is Assemble followed by JSON encoding. Content that cannot be
// represented (invalid UTF-8, non-finite scale) fails with an
// [*EncodingError] before any network call is made.
//
// # Settings
//
// [Settings] is a flat, serializable description of the same options. It is
// what config files and the relay server decode, and [Settings.Apply] copies
// the populated fields onto an Options value.
package pdf
