// Package integrations provides the shared HTTP transport for remote
// rendering services.
//
// # Overview
//
// Each service has its own subpackage built on [Client]:
//
//   - [browserless]: the browserless PDF API (/chrome/pdf)
//
// # Client Pattern
//
// Service clients follow a consistent pattern:
//
//	client := browserless.NewClient(apiKey)
//	client.Options().SetFormat("Letter").SetLandscape(pdf.Bool(true))
//	doc, err := client.RenderURL(ctx, "https://example.com")
//
// The shared [Client] handles:
//   - Default and per-request headers
//   - Status classification ([StatusError], [ErrNotFound], [ErrNetwork])
//   - Retryable marking of transient failures for opt-in retries
//   - HTTP hooks from [observability]
//
// # Adding a New Service
//
//  1. Create a subpackage: pkg/integrations/<service>/
//  2. Build requests with [Request] and send them with [Client.Do]
//  3. Convert [StatusError] and [ErrNetwork] into the service's error type
//
// [browserless]: github.com/matzehuels/chromepdf/pkg/integrations/browserless
// [observability]: github.com/matzehuels/chromepdf/pkg/observability
package integrations
