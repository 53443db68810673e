package mock

import (
	"context"

	"github.com/folioworks/folio"
)

var _ folio.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of folio.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) (*folio.Asset, error)
}

func (d *Downloader) Download(ctx context.Context, url string) (*folio.Asset, error) {
	return d.DownloadFn(ctx, url)
}

var _ folio.AssetStore = (*AssetStore)(nil)

// AssetStore is a mock implementation of folio.AssetStore.
type AssetStore struct {
	SaveFn   func(ctx context.Context, relPath string, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *AssetStore) Save(ctx context.Context, relPath string, data []byte) error {
	return s.SaveFn(ctx, relPath, data)
}

func (s *AssetStore) Commit() error {
	return s.CommitFn()
}

func (s *AssetStore) Abort() error {
	return s.AbortFn()
}
