package mock

import "github.com/folioworks/folio"

var _ folio.ImageMatcher = (*ImageMatcher)(nil)

// ImageMatcher is a mock implementation of folio.ImageMatcher.
type ImageMatcher struct {
	MatchImagesFn func(html string, labels []string) ([]*folio.ImageMatch, error)
}

func (m *ImageMatcher) MatchImages(html string, labels []string) ([]*folio.ImageMatch, error) {
	return m.MatchImagesFn(html, labels)
}

var _ folio.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of folio.PageAnalyzer.
type PageAnalyzer struct {
	AnalyzePageFn func(html string, pageURL string) (*folio.PageAnalysis, error)
}

func (a *PageAnalyzer) AnalyzePage(html string, pageURL string) (*folio.PageAnalysis, error) {
	return a.AnalyzePageFn(html, pageURL)
}
