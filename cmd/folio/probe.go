package main

import (
	"context"
	"fmt"
	"time"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
)

// RenderDelayConfigurer can configure a render delay.
// The rod fetcher implements this interface.
type RenderDelayConfigurer interface {
	SetRenderDelay(d time.Duration)
}

// ProbeResult is the fetcher chosen for a site and why.
type ProbeResult struct {
	Fetcher  folio.Fetcher
	Platform folio.Platform
	Render   bool
	Reason   string
}

// ProbeFetcher fetches sourceURL over HTTP, detects the site builder and
// picks the fetcher to use for the rest of the run.
//
//   - Builder known to need JavaScript (Wix): rod, with its render delay
//   - Builder known to serve static markup: HTTP
//   - Unknown builder: render with rod too and compare the extracted content
//   - HTTP fetch fails: rod
//
// Always returns a usable fetcher.
func ProbeFetcher(
	ctx context.Context,
	sourceURL string,
	httpFetcher folio.Fetcher,
	rodFetcher folio.Fetcher,
	prober folio.Prober,
	extractor folio.Extractor,
) *ProbeResult {
	httpHTML, err := httpFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return &ProbeResult{Fetcher: rodFetcher, Render: true, Reason: fmt.Sprintf("HTTP fetch failed: %v", err)}
	}

	platform := prober.Detect(httpHTML)
	if delay := prober.RenderDelay(platform); delay > 0 {
		if configurer, ok := rodFetcher.(RenderDelayConfigurer); ok {
			configurer.SetRenderDelay(delay)
		}
	}

	if requiresJS, known := prober.RequiresJS(platform); known {
		if requiresJS {
			return &ProbeResult{Fetcher: rodFetcher, Platform: platform, Render: true, Reason: "site builder renders in JavaScript"}
		}
		return &ProbeResult{Fetcher: httpFetcher, Platform: platform, Reason: "site builder serves static markup"}
	}

	rodHTML, err := rodFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return &ProbeResult{Fetcher: httpFetcher, Platform: platform, Reason: fmt.Sprintf("rendering failed: %v", err)}
	}
	if crawl.ContentDiffers(httpHTML, rodHTML, extractor) {
		return &ProbeResult{Fetcher: rodFetcher, Platform: platform, Render: true, Reason: "rendered page has more content"}
	}
	return &ProbeResult{Fetcher: httpFetcher, Platform: platform, Reason: "rendered page adds nothing"}
}

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	result, err := deps.Probe(deps.Ctx, deps.Config.ListingURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	platform := string(result.Platform)
	if platform == "" {
		platform = "unknown"
	}
	fetcher := "http"
	if result.Render {
		fetcher = "browser"
	}
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", deps.Config.ListingURL)
	fmt.Fprintf(deps.Stdout, "Platform: %s\n", platform)
	fmt.Fprintf(deps.Stdout, "Fetcher:  %s (%s)\n", fetcher, result.Reason)
	return nil
}
