// Package browserless renders PDFs with the browserless headless-Chrome API.
//
// A [Client] owns a live [pdf.Options] value. Configure it through
// [Client.Options] and render inline HTML, a local HTML file or a URL:
//
//	client := browserless.NewClient(os.Getenv("BROWSERLESS_TOKEN"))
//	client.Options().
//		SetFormat("Letter").
//		SetMargin(pdf.UniformMargin("1cm")).
//		SetFooter(pdf.String(`<span class="pageNumber"></span>`))
//
//	doc, err := client.RenderURL(ctx, "https://example.com")
//
// Each render is one POST to {apiURL}{endpoint} with the API key in the
// token query parameter. Service and transport failures are reported as
// [*APIError]; payloads that cannot be encoded fail with
// [*pdf.EncodingError] before any request is made.
//
// The live options are not safe for concurrent mutation. Concurrent callers
// pass their own options to [Client.Render], typically a [pdf.Options.Clone].
//
// Nothing is retried or cached unless [WithRetries] or [WithCache] is given.
package browserless
