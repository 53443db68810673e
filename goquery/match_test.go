package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
	"github.com/folioworks/folio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestMatchImages(t *testing.T) {
	t.Parallel()

	t.Run("collects image next to heading containing label", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div><h2>Project X</h2><img src="x-thumb.png"></div></body></html>`)

		assert.Equal(t, []string{"x-thumb.png"}, goquery.MatchImages(doc, "Project X"))
	})

	t.Run("collects image nested two levels below heading's sibling", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div><h2>Project X</h2><div><div><img src="x-thumb.png"></div></div></div></body></html>`)

		assert.Equal(t, []string{"x-thumb.png"}, goquery.MatchImages(doc, "Project X"))
	})

	t.Run("ignores label in page title", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><head><title>Atlas | Folio</title></head><body>
<div><p>Other work</p><img src="unrelated.png"></div>
</body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "Atlas"))
	})

	t.Run("collects all card images in document order", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<div class="project-card"><p>Alpha Redesign</p><img src="a.png"><img src="b.png"></div>
</body></html>`)

		assert.Equal(t, []string{"a.png", "b.png"}, goquery.MatchImages(doc, "Alpha Redesign"))
	})

	t.Run("drops filename match that is a logo", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><img src="images/logo-project-x.png"></body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "Project X"))
	})

	t.Run("matches label case-insensitively", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div><h2>PROJECT X</h2><img src="x.png"></div></body></html>`)

		assert.Equal(t, []string{"x.png"}, goquery.MatchImages(doc, "project x"))
	})

	t.Run("falls back to lazy-load attribute when src is a data URI", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div>
<h3>Ocean Study</h3>
<img src="data:image/gif;base64,R0lGODlhAQABAAAAACw=" data-src="ocean-full.jpg">
</div></body></html>`)

		assert.Equal(t, []string{"ocean-full.jpg"}, goquery.MatchImages(doc, "Ocean Study"))
	})

	t.Run("uses first non-empty source attribute", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div>
<h3>Ocean Study</h3>
<img src="" data-src="" data-lazy-src="lazy.jpg" data-original="orig.jpg">
</div></body></html>`)

		assert.Equal(t, []string{"lazy.jpg"}, goquery.MatchImages(doc, "Ocean Study"))
	})

	t.Run("skips images with only inline data sources", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div>
<h3>Ocean Study</h3>
<img src="data:image/png;base64,iVBORw0KGgo=">
</div></body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "Ocean Study"))
	})

	t.Run("collects inline background of ancestor", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<div class="hero" style="background-image: url('covers/ocean.jpg'); background-size: cover">
<h3>Ocean Study</h3>
</div>
</body></html>`)

		assert.Equal(t, []string{"covers/ocean.jpg"}, goquery.MatchImages(doc, "Ocean Study"))
	})

	t.Run("matches container by significant word", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><ul>
<li class="gallery-item"><span>Mobile Banking App</span><img src="shot.png"></li>
</ul></body></html>`)

		assert.Equal(t, []string{"shot.png"}, goquery.MatchImages(doc, "Banking Overhaul"))
	})

	t.Run("ignores containers without project-like class", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><ul>
<li class="entry"><span>Mobile Banking App</span><img src="shot.png"></li>
</ul></body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "Banking Overhaul"))
	})

	t.Run("matches filename against significant words", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<img src="https://cdn.example.com/uploads/PayPal-Hero.JPG?w=800">
<img src="https://cdn.example.com/paypal/hero.jpg">
</body></html>`)

		assert.Equal(t,
			[]string{"https://cdn.example.com/uploads/PayPal-Hero.JPG?w=800"},
			goquery.MatchImages(doc, "PayPal Redesign"))
	})

	t.Run("ignores short words for filename matching", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><img src="ux-board.png"></body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "UX Kit"))
	})

	t.Run("orders text anchor results before filename results", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<div><h2>Atlas</h2><img src="cover.png"></div>
<footer><img src="atlas-detail.png"></footer>
</body></html>`)

		assert.Equal(t, []string{"cover.png", "atlas-detail.png"}, goquery.MatchImages(doc, "Atlas"))
	})

	t.Run("returns empty when label is absent", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div><h2>Other Work</h2><img src="other.png"></div></body></html>`)

		assert.Empty(t, goquery.MatchImages(doc, "Nonexistent Thing"))
	})

	t.Run("returns nil for blank label", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><img src="a.png"></body></html>`)

		assert.Nil(t, goquery.MatchImages(doc, "   "))
	})

	t.Run("never returns duplicates or noise", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
<section class="portfolio">
	<article class="work-card" style="background: url(shared.jpg)">
		<h3>Harbor Tracker</h3>
		<img src="harbor-1.png">
		<img src="harbor-1.png">
		<img src="/static/social/share.png">
		<img src="avatar.jpg">
		<img src="harbor-icon.svg">
	</article>
	<div class="item"><p>Harbor Tracker</p><img src="shared.jpg"></div>
</section>
<img src="harbor-2.png">
</body></html>`)

		images := goquery.MatchImages(doc, "Harbor Tracker")

		seen := map[string]bool{}
		for _, img := range images {
			assert.False(t, seen[img], "duplicate %q", img)
			seen[img] = true
			assert.False(t, goquery.IsNoise(img), "noise %q", img)
		}
		assert.Equal(t, []string{"harbor-1.png", "shared.jpg", "harbor-2.png"}, images)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="project"><h2>Delta Flow</h2><img src="d1.png"><img src="d2.png"></div>
<img src="delta-extra.png">
</body></html>`

		first := goquery.MatchImages(parseDoc(t, html), "Delta Flow")
		second := goquery.MatchImages(parseDoc(t, html), "Delta Flow")

		assert.Equal(t, first, second)
		assert.Equal(t, []string{"d1.png", "d2.png", "delta-extra.png"}, first)
	})
}

func TestSignificantWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  []string
	}{
		{"PayPal Redesign", []string{"paypal", "redesign"}},
		{"UX of Tea", nil},
		{"Café Menu", []string{"café", "menu"}},
		{"  Overlayed  ", []string{"overlayed"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.SignificantWords(tt.label))
		})
	}
}

func TestIsNoise(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.IsNoise("img/Site-LOGO.png"))
	assert.True(t, goquery.IsNoise("/favicon.ico"))
	assert.True(t, goquery.IsNoise("/social/twitter.svg"))
	assert.True(t, goquery.IsNoise("team/avatar-1.jpg"))
	assert.False(t, goquery.IsNoise("projects/harbor.png"))
}

func TestImageMatcher_MatchImages(t *testing.T) {
	t.Parallel()

	t.Run("matches every label against one page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="project-card"><h3>Alpha Redesign</h3><img src="a.png"></div>
<div class="project-card"><h3>Beta Launch</h3><img src="b.png"></div>
</body></html>`

		matches, err := goquery.NewImageMatcher().MatchImages(html, []string{"Alpha Redesign", "Gamma"})

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Alpha Redesign", matches[0].Label)
		assert.Equal(t, "a.png", matches[0].Primary())
		assert.Equal(t, "Gamma", matches[1].Label)
		assert.Empty(t, matches[1].Images)
		assert.Empty(t, matches[1].Primary())
	})

	t.Run("rejects blank label", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewImageMatcher().MatchImages("<html></html>", []string{"ok", " "})

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}
