package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/folioworks/folio"
)

// Ensure AssetStore implements folio.AssetStore at compile time.
var _ folio.AssetStore = (*AssetStore)(nil)

// AssetStore implements folio.AssetStore with atomic update semantics.
// Assets are saved to a temporary directory and moved into place on Commit.
// Files already in the final directory that were not saved in this run are
// left alone, so a partial re-run never removes earlier downloads.
type AssetStore struct {
	baseDir string
	name    string
}

// NewAssetStore creates a new AssetStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewAssetStore(baseDir, name string) *AssetStore {
	return &AssetStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *AssetStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *AssetStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes data to relPath inside the temporary directory. Absolute
// paths and paths escaping the store are rejected with EINVALID.
// Save is safe for concurrent use with distinct paths.
func (s *AssetStore) Save(ctx context.Context, relPath string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean, err := cleanRelPath(relPath)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit moves every saved file into the final directory, replacing files
// with the same path, then removes the temporary directory.
func (s *AssetStore) Commit() error {
	tmp := s.tempDir()
	if _, err := os.Stat(tmp); os.IsNotExist(err) {
		return nil
	}

	err := filepath.WalkDir(tmp, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(tmp, p)
		if err != nil {
			return err
		}
		target := filepath.Join(s.finalDir(), rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.Rename(p, target)
	})
	if err != nil {
		return err
	}

	return os.RemoveAll(tmp)
}

// Abort discards everything saved since the last Commit.
func (s *AssetStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// cleanRelPath validates relPath and returns it in OS form.
func cleanRelPath(relPath string) (string, error) {
	if relPath == "" {
		return "", folio.Errorf(folio.EINVALID, "asset path required")
	}
	if filepath.IsAbs(relPath) || strings.HasPrefix(relPath, "/") {
		return "", folio.Errorf(folio.EINVALID, "asset path must be relative: %q", relPath)
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", folio.Errorf(folio.EINVALID, "path traversal in asset path: %q", relPath)
	}
	return clean, nil
}
