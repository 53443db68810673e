package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/folioworks/folio"
)

var _ folio.Downloader = (*Downloader)(nil)

// Downloader retrieves binary assets over HTTP.
type Downloader struct {
	client  *http.Client
	maxSize int64
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	o := newOptions(opts)
	return &Downloader{
		client:  newClient(o),
		maxSize: o.maxSize,
	}
}

// Download fetches url and returns its bytes with the media type.
// The media type comes from the Content-Type header, or is sniffed from
// the body when the server omits it or sends a generic type.
func (d *Downloader) Download(ctx context.Context, url string) (*folio.Asset, error) {
	resp, err := get(ctx, d.client, url, "image/avif,image/webp,image/*,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.ContentLength > d.maxSize {
		return nil, folio.Errorf(folio.EINVALID, "asset too large: %d bytes (max %d)", resp.ContentLength, d.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(data)) > d.maxSize {
		return nil, folio.Errorf(folio.EINVALID, "asset too large: more than %d bytes", d.maxSize)
	}
	if len(data) == 0 {
		return nil, folio.Errorf(folio.EINVALID, "empty response for %s", url)
	}

	return &folio.Asset{
		URL:         url,
		ContentType: contentType(resp.Header.Get("Content-Type"), data),
		Data:        data,
	}, nil
}

// contentType returns the media type without parameters.
func contentType(header string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "application/octet-stream" {
		return mt
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
