package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
	"golang.org/x/net/html"
)

// maxAncestorDepth bounds the upward walk from a matching text node.
const maxAncestorDepth = 7

// imageSourceAttrs lists the img attributes that may hold the image
// location, in priority order. Lazy-loading builders put a placeholder in
// src and the real location in one of the data- attributes.
var imageSourceAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

// noiseTokens disqualify a candidate wherever it was found.
var noiseTokens = []string{"logo", "icon", "favicon", "avatar", "social"}

var (
	backgroundURLRe  = regexp.MustCompile(`url\(["']?([^"')]+)["']?\)`)
	containerClassRe = regexp.MustCompile(`(?i)project|portfolio|work|item|card|gallery`)
)

// containerSelector lists the structural tags considered by the
// container classification strategy.
const containerSelector = "div, article, section, li"

var _ folio.ImageMatcher = (*ImageMatcher)(nil)

// ImageMatcher implements folio.ImageMatcher on top of MatchImages.
// It parses the page once and matches every label against the same tree.
// ImageMatcher is stateless and safe for concurrent use.
type ImageMatcher struct{}

// NewImageMatcher creates a new ImageMatcher.
func NewImageMatcher() *ImageMatcher {
	return &ImageMatcher{}
}

// MatchImages parses html and returns one match per label, in label order.
func (m *ImageMatcher) MatchImages(rawHTML string, labels []string) ([]*folio.ImageMatch, error) {
	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return nil, folio.Errorf(folio.EINVALID, "label %d is empty", i)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	matches := make([]*folio.ImageMatch, 0, len(labels))
	for _, label := range labels {
		matches = append(matches, &folio.ImageMatch{
			Label:  label,
			Images: MatchImages(doc, label),
		})
	}
	return matches, nil
}

// MatchImages returns the image references in doc most plausibly
// associated with label, best candidate first.
//
// Three strategies run in fixed priority order and their results are
// concatenated:
//   - Text anchor: from every body text node containing the label, walk up to
//     seven ancestors collecting their images and inline backgrounds.
//   - Container: project-like containers (div, article, section, li with a
//     project/portfolio/work/item/card/gallery class) whose text mentions
//     the label or one of its significant words.
//   - Filename: any image whose file name contains a significant word.
//
// The concatenation is then deduplicated (first occurrence wins) and
// stripped of logo, icon, favicon, avatar and social references. An empty
// result is a valid outcome. A blank label yields nil.
//
// MatchImages never modifies doc and is safe to call concurrently.
func MatchImages(doc *goquery.Document, label string) []string {
	needle := strings.ToLower(strings.TrimSpace(label))
	if needle == "" {
		return nil
	}
	keywords := SignificantWords(label)

	var candidates []string
	candidates = append(candidates, matchTextAnchors(doc, needle)...)
	candidates = append(candidates, matchContainers(doc, needle, keywords)...)
	candidates = append(candidates, matchFilenames(doc, keywords)...)

	return filterCandidates(candidates)
}

// SignificantWords returns the lowercased whitespace-delimited tokens of
// label that are longer than three characters.
func SignificantWords(label string) []string {
	var words []string
	for _, w := range strings.Fields(label) {
		if utf8.RuneCountInString(w) > 3 {
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

// IsNoise reports whether ref looks like a logo, icon, favicon, avatar
// or social badge.
func IsNoise(ref string) bool {
	lower := strings.ToLower(ref)
	for _, token := range noiseTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// matchTextAnchors walks only the body: a <title> mentioning the label
// would otherwise climb to <html> and claim every image on the page.
func matchTextAnchors(doc *goquery.Document, needle string) []string {
	var images []string
	for _, root := range doc.Find("body").Nodes {
		walkTextNodes(root, func(n *html.Node) {
			if !strings.Contains(strings.ToLower(n.Data), needle) {
				return
			}
			level := n.Parent
			for range maxAncestorDepth {
				if level == nil {
					break
				}
				sel := selectionOf(level)
				images = append(images, imageSources(sel)...)
				if bg, ok := backgroundImage(sel); ok {
					images = append(images, bg)
				}
				level = level.Parent
			}
		})
	}
	return images
}

func matchContainers(doc *goquery.Document, needle string, keywords []string) []string {
	var images []string
	doc.Find(containerSelector).Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !containerClassRe.MatchString(class) {
			return
		}
		text := strings.ToLower(sel.Text())
		if !strings.Contains(text, needle) && !containsAny(text, keywords) {
			return
		}
		images = append(images, imageSources(sel)...)
		if bg, ok := backgroundImage(sel); ok {
			images = append(images, bg)
		}
	})
	return images
}

func matchFilenames(doc *goquery.Document, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	var images []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := imageSource(img)
		if !ok {
			return
		}
		if containsAny(strings.ToLower(fileName(src)), keywords) {
			images = append(images, src)
		}
	})
	return images
}

// filterCandidates removes repeats and noise, keeping first occurrences.
func filterCandidates(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	var result []string
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if IsNoise(c) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// imageSources returns the sources of every img descendant of sel.
func imageSources(sel *goquery.Selection) []string {
	var sources []string
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := imageSource(img); ok {
			sources = append(sources, src)
		}
	})
	return sources
}

// imageSource returns the first usable source attribute of an img node.
// Inline data: URIs are placeholders and never count as a source.
func imageSource(img *goquery.Selection) (string, bool) {
	for _, attr := range imageSourceAttrs {
		v, ok := img.Attr(attr)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" || strings.HasPrefix(strings.ToLower(v), "data:") {
			continue
		}
		return v, true
	}
	return "", false
}

// backgroundImage extracts the url(...) locator from sel's inline style.
func backgroundImage(sel *goquery.Selection) (string, bool) {
	style, ok := sel.Attr("style")
	if !ok || style == "" {
		return "", false
	}
	m := backgroundURLRe.FindStringSubmatch(style)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// fileName returns the final path segment of a source locator.
func fileName(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	return p[strings.LastIndex(p, "/")+1:]
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// walkTextNodes calls fn for every text node under n in document order.
func walkTextNodes(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.TextNode {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTextNodes(c, fn)
	}
}

// selectionOf wraps a single node so goquery can search beneath it.
func selectionOf(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}
