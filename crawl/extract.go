package crawl

import (
	"strings"

	"github.com/folioworks/folio"
)

var _ folio.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor runs Primary and falls back to Fallback when Primary
// fails or finds no content. Metadata missing from the fallback result is
// filled in from the primary result.
type FallbackExtractor struct {
	Primary  folio.Extractor
	Fallback folio.Extractor
}

// Extract implements folio.Extractor.
func (e *FallbackExtractor) Extract(html string) (*folio.ExtractResult, error) {
	primary, err := e.Primary.Extract(html)
	if err == nil && strings.TrimSpace(primary.ContentHTML) != "" {
		return primary, nil
	}
	if e.Fallback == nil {
		if err != nil {
			return nil, err
		}
		return primary, nil
	}

	fallback, ferr := e.Fallback.Extract(html)
	if ferr != nil {
		if err != nil {
			return nil, err
		}
		return primary, nil
	}
	if primary != nil {
		if fallback.Title == "" {
			fallback.Title = primary.Title
		}
		if fallback.Description == "" {
			fallback.Description = primary.Description
		}
	}
	return fallback, nil
}
