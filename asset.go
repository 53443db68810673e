package folio

import "context"

// Asset is a downloaded binary resource.
type Asset struct {
	URL         string
	ContentType string
	Data        []byte
}

// Downloader retrieves binary assets such as images.
type Downloader interface {
	Download(ctx context.Context, url string) (*Asset, error)
}

// AssetStore persists assets with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type AssetStore interface {
	// Save stores data at relPath, relative to the store root.
	Save(ctx context.Context, relPath string, data []byte) error
	Commit() error
	Abort() error
}
