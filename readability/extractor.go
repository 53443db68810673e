// Package readability is the fallback case-study text extractor, used when
// trafilatura returns too little content.
package readability

import (
	"net/url"
	"strings"

	"github.com/folioworks/folio"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements folio.Extractor at compile time.
var _ folio.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	// BaseURL, when set, resolves relative image and link URLs.
	BaseURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. The article
// excerpt becomes the description.
func (e *Extractor) Extract(rawHTML string) (*folio.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, folio.Errorf(folio.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.BaseURL)
	if err != nil {
		return nil, err
	}

	return &folio.ExtractResult{
		Title:       article.Title,
		Description: strings.TrimSpace(article.Excerpt),
		ContentHTML: article.Content,
	}, nil
}
