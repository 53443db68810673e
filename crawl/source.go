package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/folioworks/folio"
)

var _ folio.URLSource = (*Source)(nil)

// Source implements folio.URLSource by reading the site's sitemap first and
// falling back to the project links on the home page when the sitemap
// lists no project pages.
type Source struct {
	Sitemaps folio.SitemapService
	Fetcher  folio.Fetcher
	Links    folio.LinkExtractor

	// PathPrefix selects project pages, e.g. "/portfolio/".
	PathPrefix  string
	RetryDelays []time.Duration
}

// Discover implements folio.URLSource.
func (s *Source) Discover(ctx context.Context, sourceURL string) ([]folio.ProjectLink, error) {
	if s.Sitemaps != nil {
		urls, err := s.Sitemaps.DiscoverURLs(ctx, sourceURL, folio.NewPathFilter(s.PathPrefix))
		if err != nil {
			return nil, err
		}
		if links := s.sitemapLinks(urls); len(links) > 0 {
			return links, nil
		}
	}

	if s.Fetcher == nil || s.Links == nil {
		return []folio.ProjectLink{}, nil
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, sourceURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		return nil, err
	}
	return s.Links.ExtractProjectLinks(html, sourceURL, s.PathPrefix)
}

// sitemapLinks converts sitemap URLs into project links. Sitemaps carry
// no anchor text, so the text is recovered from the slug after the prefix.
func (s *Source) sitemapLinks(urls []string) []folio.ProjectLink {
	var links []folio.ProjectLink
	for _, raw := range urls {
		text := slugText(raw, s.PathPrefix)
		if text == "" {
			continue
		}
		links = append(links, folio.ProjectLink{URL: raw, Text: text})
	}
	return links
}

// slugText returns the first path segment after prefix with dashes turned
// into spaces: "/portfolio/icy-veins" gives "icy veins".
func slugText(rawURL, prefix string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if prefix != "" {
		i := strings.Index(p, prefix)
		if i < 0 {
			return ""
		}
		p = p[i+len(prefix):]
	}
	segment, _, _ := strings.Cut(strings.Trim(p, "/"), "/")
	return strings.TrimSpace(strings.ReplaceAll(segment, "-", " "))
}
