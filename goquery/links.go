package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
)

// DefaultProjectPathPrefix is the path segment that marks project pages
// on most portfolio builders.
const DefaultProjectPathPrefix = "/portfolio/"

var _ folio.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor implements folio.LinkExtractor.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractProjectLinks delegates to the package-level ExtractProjectLinks.
func (e *LinkExtractor) ExtractProjectLinks(html string, baseURL string, pathPrefix string) ([]folio.ProjectLink, error) {
	return ExtractProjectLinks(html, baseURL, pathPrefix)
}

// ExtractProjectLinks returns links to project pages found in html.
// A link qualifies when its resolved path contains pathPrefix followed by
// at least one more segment, it points at the same host as baseURL, and
// its anchor text is not empty. An empty pathPrefix uses
// DefaultProjectPathPrefix. Links are deduplicated by URL and keep
// document order.
func ExtractProjectLinks(html string, baseURL string, pathPrefix string) ([]folio.ProjectLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, folio.Errorf(folio.EINVALID, "invalid base URL: %q", baseURL)
	}
	if pathPrefix == "" {
		pathPrefix = DefaultProjectPathPrefix
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []folio.ProjectLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil || resolved.Host != base.Host {
			return
		}
		if !hasProjectPath(resolved.Path, pathPrefix) {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, folio.ProjectLink{URL: u, Text: text})
	})

	return links, nil
}

// hasProjectPath reports whether p contains prefix followed by a
// non-empty remainder, so the listing page itself never qualifies.
func hasProjectPath(p, prefix string) bool {
	i := strings.Index(p, prefix)
	if i < 0 {
		return false
	}
	return strings.Trim(p[i+len(prefix):], "/") != ""
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil if href cannot be parsed.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
