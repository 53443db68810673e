package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
)

var _ folio.Prober = (*Detector)(nil)

// wixRenderDelay gives Wix's client-side gallery hydration time to
// replace placeholder images after the load event.
const wixRenderDelay = 2 * time.Second

// Detector identifies site builders from HTML content.
// It checks for builder-specific asset hosts, data attributes, meta tags,
// and structural markers that are unique to each builder.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) folio.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return folio.PlatformUnknown
	}

	// Meta generator is the most reliable signal when present.
	if platform := d.detectFromMetaGenerator(doc); platform != folio.PlatformUnknown {
		return platform
	}

	if d.hasSelector(doc, "[data-block-type]") ||
		d.hasSelector(doc, "link[href*='static1.squarespace.com'], script[src*='static1.squarespace.com']") ||
		d.hasSelector(doc, "img[src*='squarespace-cdn.com'], img[data-src*='squarespace-cdn.com']") {
		return folio.PlatformSquarespace
	}

	if d.hasSelector(doc, "#SITE_CONTAINER") ||
		d.hasSelector(doc, "script[src*='parastorage.com']") ||
		strings.Contains(html, "_wixCssImports") {
		return folio.PlatformWix
	}

	if d.hasSelector(doc, "html[data-wf-page], html[data-wf-site]") {
		return folio.PlatformWebflow
	}

	if d.hasSelector(doc, "link[href*='/wp-content/'], script[src*='/wp-content/'], img[src*='/wp-content/']") ||
		d.hasSelector(doc, "link[href*='/wp-includes/'], script[src*='/wp-includes/']") {
		return folio.PlatformWordPress
	}

	return folio.PlatformUnknown
}

// RequiresJS reports whether a platform only populates its images from
// JavaScript. Returns known=false for unrecognized platforms.
func (d *Detector) RequiresJS(platform folio.Platform) (requires bool, known bool) {
	switch platform {
	case folio.PlatformWix:
		return true, true
	case folio.PlatformSquarespace, folio.PlatformWordPress, folio.PlatformWebflow:
		return false, true
	}
	return false, false
}

// RenderDelay returns the extra wait after page load for a platform.
func (d *Detector) RenderDelay(platform folio.Platform) time.Duration {
	if platform == folio.PlatformWix {
		return wixRenderDelay
	}
	return 0
}

// detectFromMetaGenerator checks the meta generator tag for platform identification.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) folio.Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case generator == "":
		return folio.PlatformUnknown
	case strings.Contains(generator, "squarespace"):
		return folio.PlatformSquarespace
	case strings.Contains(generator, "wix"):
		return folio.PlatformWix
	case strings.Contains(generator, "wordpress"):
		return folio.PlatformWordPress
	case strings.Contains(generator, "webflow"):
		return folio.PlatformWebflow
	}

	return folio.PlatformUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
