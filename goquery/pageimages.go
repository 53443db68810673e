package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
)

// oldVersionTokens mark screenshots of a project's previous iteration.
var oldVersionTokens = []string{"overwolf", "old", "intro"}

// ExtractPageImages returns every content image on a case-study page,
// resolved against baseURL and classified by kind. Inline data URIs,
// repeated sources and images whose file name is noise are skipped.
func ExtractPageImages(doc *goquery.Document, baseURL string) ([]folio.PageImage, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "invalid base URL: %v", err)
	}

	seen := make(map[string]bool)
	var images []folio.PageImage

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := imageSource(img)
		if !ok || seen[src] {
			return
		}
		seen[src] = true

		resolved := resolveURL(base, src)
		if resolved == nil {
			return
		}
		name := strings.ToLower(fileName(resolved.Path))
		if IsNoise(name) {
			return
		}

		images = append(images, folio.PageImage{
			URL:  resolved.String(),
			Kind: classifyPageImage(img, name),
		})
	})

	return images, nil
}

func classifyPageImage(img *goquery.Selection, name string) folio.ImageKind {
	parentText := strings.ToLower(img.Parent().Text())
	if strings.Contains(parentText, "design system") || strings.Contains(parentText, "component") {
		return folio.ImageKindDesignSystem
	}
	if containsAny(name, oldVersionTokens) {
		return folio.ImageKindOldVersion
	}
	return folio.ImageKindDetailed
}
