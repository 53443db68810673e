package trafilatura_test

import (
	"testing"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const caseStudyHTML = `<!DOCTYPE html>
<html>
<head>
<title>Icy Veins | Jane Doe Portfolio</title>
<meta property="og:title" content="Icy Veins Redesign">
<meta name="description" content="Redesigning a game guide site for millions of readers.">
</head>
<body>
<nav class="site-nav">
<a href="/">Home</a>
<a href="/portfolio">Portfolio</a>
<a href="/contact">Contact</a>
</nav>
<main>
<article>
<h1>Icy Veins</h1>
<p>Icy Veins publishes guides for several online games. The redesign focused on navigation between classes and specializations.</p>
<h2>Research</h2>
<p>We interviewed twelve regular readers and ran a card sort on the guide structure to find where readers got lost.</p>
<figure><img src="/images/icy-veins/hero.png" alt="New guide layout"></figure>
<h2>Findings</h2>
<p>Readers skimmed the table of contents first and rarely scrolled past the second section without it.</p>
</article>
</main>
<section class="comments"><p>Great work! Posted by a visitor.</p></section>
<footer><p>Copyright 2024 Jane Doe</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and description from metadata", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(caseStudyHTML)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.Description, "game guide site")
	})

	t.Run("extracts case-study body", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(caseStudyHTML)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "interviewed twelve regular readers")
		assert.Contains(t, result.ContentHTML, "rarely scrolled past")
	})

	t.Run("removes navigation and footer boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(caseStudyHTML)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "site-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Jane Doe")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Simple project summary</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple project summary")
	})
}
