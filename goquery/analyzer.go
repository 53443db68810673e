package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
)

var _ folio.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer implements folio.PageAnalyzer with a single parse per page.
type PageAnalyzer struct{}

// NewPageAnalyzer creates a new PageAnalyzer.
func NewPageAnalyzer() *PageAnalyzer {
	return &PageAnalyzer{}
}

// AnalyzePage extracts the case study and classified images of a page.
func (a *PageAnalyzer) AnalyzePage(html string, pageURL string) (*folio.PageAnalysis, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	images, err := ExtractPageImages(doc, pageURL)
	if err != nil {
		return nil, err
	}

	return &folio.PageAnalysis{
		CaseStudy: ExtractCaseStudy(doc),
		Images:    images,
	}, nil
}
