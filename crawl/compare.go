package crawl

import (
	"strings"

	"github.com/folioworks/folio"
)

// ContentDiffers compares HTTP-fetched HTML with browser-rendered HTML of
// the same page. It returns true when rendering reveals more images, or
// when the rendered main content is more than 50% longer. Extraction
// errors also return true.
func ContentDiffers(httpHTML, rodHTML string, extractor folio.Extractor) bool {
	if imageCount(rodHTML) > imageCount(httpHTML) {
		return true
	}

	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}
	rodResult, err := extractor.Extract(rodHTML)
	if err != nil {
		return true
	}

	httpLen := len(httpResult.ContentHTML)
	rodLen := len(rodResult.ContentHTML)
	if httpLen == 0 {
		return rodLen > 0
	}
	return float64(rodLen) > float64(httpLen)*1.5
}

func imageCount(html string) int {
	return strings.Count(strings.ToLower(html), "<img")
}
