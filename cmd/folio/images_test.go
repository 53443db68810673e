package main_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/folioworks/folio"
	main "github.com/folioworks/folio/cmd/folio"
	"github.com/folioworks/folio/crawl"
	"github.com/folioworks/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngData(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 3))))
	return buf.Bytes()
}

type recordingStore struct {
	mu        sync.Mutex
	saved     []string
	committed bool
	aborted   bool
}

func (s *recordingStore) mock() *mock.AssetStore {
	return &mock.AssetStore{
		SaveFn: func(_ context.Context, relPath string, _ []byte) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.saved = append(s.saved, relPath)
			return nil
		},
		CommitFn: func() error {
			s.committed = true
			return nil
		},
		AbortFn: func() error {
			s.aborted = true
			return nil
		},
	}
}

func TestImagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("downloads, commits and prints image fields", func(t *testing.T) {
		t.Parallel()

		data := pngData(t)
		store := &recordingStore{}
		harvester := &crawl.Harvester{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			}},
			Matcher: &mock.ImageMatcher{MatchImagesFn: func(_ string, labels []string) ([]*folio.ImageMatch, error) {
				return []*folio.ImageMatch{
					{Label: labels[0], Images: []string{"/media/icy.png"}},
					{Label: labels[1]},
				}, nil
			}},
			Downloader: &mock.Downloader{DownloadFn: func(_ context.Context, url string) (*folio.Asset, error) {
				return &folio.Asset{URL: url, ContentType: "image/png", Data: data}, nil
			}},
			Store:        store.mock(),
			PublicPrefix: "/images/projects",
			RetryDelays:  []time.Duration{0, 0, 0},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: testConfig(t),
			Projects: staticProjects(
				&folio.Project{ID: "icy-veins", Title: "Icy Veins"},
				&folio.Project{ID: "tabstats", Title: "Tabstats"},
			),
			Harvester: harvester,
		}

		err := (&main.ImagesCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"icy-veins.png"}, store.saved)
		assert.True(t, store.committed)
		output := stdout.String()
		assert.Contains(t, output, "Downloaded 1 images")
		assert.Contains(t, output, `No image found for tabstats ("Tabstats")`)
		assert.Contains(t, output, `image: "/images/projects/icy-veins.png",`)
		assert.Contains(t, output, "// tabstats: no image found")
	})

	t.Run("aborts when the listing cannot be fetched", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		harvester := &crawl.Harvester{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection refused")
			}},
			Store:       store.mock(),
			RetryDelays: []time.Duration{0, 0, 0},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Config:    testConfig(t),
			Projects:  staticProjects(&folio.Project{ID: "icy-veins", Title: "Icy Veins"}),
			Harvester: harvester,
		}

		err := (&main.ImagesCmd{}).Run(deps)

		require.Error(t, err)
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestImageFields(t *testing.T) {
	t.Parallel()

	projects := []*folio.Project{
		{ID: "atlas", Title: "Atlas"},
		{ID: "icy-veins", Title: "Icy Veins"},
	}
	images := []*folio.Image{
		{ProjectID: "icy-veins", Kind: folio.ImageKindPrimary, LocalPath: "/images/projects/icy-veins.webp"},
		{ProjectID: "atlas", Kind: folio.ImageKindDetailed, LocalPath: "/images/projects/atlas/hero.png"},
	}

	got := main.ImageFields(projects, images)

	assert.Equal(t, "// atlas: no image found\n// icy-veins\nimage: \"/images/projects/icy-veins.webp\",\n", got)
}
