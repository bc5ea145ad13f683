// Package pkg provides the libraries behind chromepdf, a client for the
// browserless headless-Chrome PDF API.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [pdf] - Option model and payload assembly
//  2. [integrations] - HTTP transport and the browserless client
//  3. [cache] - Render caches (file, Redis)
//  4. [config] - TOML configuration and client construction
//  5. [observability] - Render, cache and HTTP hooks with a Prometheus backend
//
// # Architecture
//
// The data flow for a render:
//
//	pdf.Options + pdf.Target
//	         ↓
//	    [pdf] package (assemble + encode payload)
//	         ↓
//	    [cache] package (lookup by endpoint + body)
//	         ↓
//	    [integrations] package (POST, optional retries)
//	         ↓
//	    PDF bytes
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chromepdf/pkg/integrations/browserless"
//	    "github.com/matzehuels/chromepdf/pkg/pdf"
//	)
//
//	client := browserless.NewClient(apiKey)
//	client.Options().SetLandscape(pdf.Bool(true)).SetMargin(pdf.UniformMargin("1cm"))
//	doc, err := client.RenderURL(ctx, "https://example.com")
//
// # Configuration
//
// [config.Load] reads $XDG_CONFIG_HOME/chromepdf/config.toml, applies the
// CHROMEPDF_* environment overrides and builds a ready client with
// [config.Config.NewClient].
package pkg
