package goquery_test

import (
	"testing"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProjectLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts portfolio links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/portfolio/">Portfolio</a><a href="/about">About</a></nav>
<div class="grid">
	<a href="/portfolio/icy-veins">Icy  Veins</a>
	<a href="https://www.example.com/portfolio/paypal-redesign-lightdark">PayPal Redesign</a>
</div>
</body></html>`

		links, err := goquery.ExtractProjectLinks(html, "https://www.example.com", "")

		require.NoError(t, err)
		assert.Equal(t, []folio.ProjectLink{
			{URL: "https://www.example.com/portfolio/icy-veins", Text: "Icy Veins"},
			{URL: "https://www.example.com/portfolio/paypal-redesign-lightdark", Text: "PayPal Redesign"},
		}, links)
	})

	t.Run("deduplicates by URL keeping first text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/portfolio/overlayed-dash-overlay">Overlayed</a>
<a href="/portfolio/overlayed-dash-overlay#gallery">View project</a>
</body></html>`

		links, err := goquery.ExtractProjectLinks(html, "https://www.example.com", "/portfolio/")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://www.example.com/portfolio/overlayed-dash-overlay", links[0].URL)
		assert.Equal(t, "Overlayed", links[0].Text)
	})

	t.Run("skips image-only anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/portfolio/hertz"><img src="hertz.png"></a></body></html>`

		links, err := goquery.ExtractProjectLinks(html, "https://www.example.com", "")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("filters external and non-HTTP links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="https://other.com/portfolio/stolen">Stolen</a>
<a href="https://sub.example.com/portfolio/sub">Sub</a>
<a href="mailto:me@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="/portfolio/kept">Kept</a>
</body></html>`

		links, err := goquery.ExtractProjectLinks(html, "https://example.com", "")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://example.com/portfolio/kept", links[0].URL)
	})

	t.Run("uses custom path prefix", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/work/alpha">Alpha</a>
<a href="/portfolio/beta">Beta</a>
</body></html>`

		links, err := goquery.ExtractProjectLinks(html, "https://example.com", "/work/")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "Alpha", links[0].Text)
		assert.Equal(t, "alpha", links[0].ProjectID())
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractProjectLinks("<html></html>", "not a url", "")

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})

	t.Run("handles empty HTML", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractProjectLinks("", "https://example.com", "")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
