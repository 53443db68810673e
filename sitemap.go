package folio

import (
	"context"
	"regexp"
	"slices"
)

// SitemapService lists the page URLs a site publishes. Site builders such
// as Squarespace put every portfolio page in their sitemap, which makes it
// the cheapest way to find project pages.
type SitemapService interface {
	// DiscoverURLs reads the sitemaps named in robots.txt, or /sitemap.xml
	// when there are none, following sitemap indexes. A nil filter keeps
	// every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter keeps URLs that match any Include pattern (all URLs when
// Include is empty) and no Exclude pattern.
type URLFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// NewPathFilter keeps URLs containing prefix, such as "/portfolio/". An
// empty prefix yields a nil filter.
func NewPathFilter(prefix string) *URLFilter {
	if prefix == "" {
		return nil
	}
	return &URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(regexp.QuoteMeta(prefix))},
	}
}

// Match reports whether url passes f. A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}
