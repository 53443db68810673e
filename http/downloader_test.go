package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioworks/folio"
	foliohttp "github.com/folioworks/folio/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("returns bytes and header content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/webp; charset=binary")
			_, _ = w.Write([]byte("RIFF0000WEBP"))
		}))
		defer server.Close()

		asset, err := foliohttp.NewDownloader().Download(context.Background(), server.URL+"/a.webp")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/a.webp", asset.URL)
		assert.Equal(t, "image/webp", asset.ContentType)
		assert.Equal(t, []byte("RIFF0000WEBP"), asset.Data)
	})

	t.Run("sniffs content type when header is generic", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(pngHeader)
		}))
		defer server.Close()

		asset, err := foliohttp.NewDownloader().Download(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "image/png", asset.ContentType)
	})

	t.Run("rejects assets over the size cap", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(make([]byte, 64))
		}))
		defer server.Close()

		_, err := foliohttp.NewDownloader(foliohttp.WithMaxSize(16)).Download(context.Background(), server.URL)

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		_, err := foliohttp.NewDownloader().Download(context.Background(), server.URL)

		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := foliohttp.NewDownloader().Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}
