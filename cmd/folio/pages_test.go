package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folioworks/folio"
	main "github.com/folioworks/folio/cmd/folio"
	"github.com/folioworks/folio/crawl"
	"github.com/folioworks/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("scrapes pages and writes a JSON summary", func(t *testing.T) {
		t.Parallel()

		data := pngData(t)
		store := &recordingStore{}
		var written []string
		harvester := &crawl.Harvester{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			}},
			Analyzer: &mock.PageAnalyzer{AnalyzePageFn: func(_ string, _ string) (*folio.PageAnalysis, error) {
				return &folio.PageAnalysis{
					CaseStudy: &folio.CaseStudy{Title: "Icy Veins", Role: "Lead designer"},
					Images:    []folio.PageImage{{URL: "https://legacy.example.com/media/hero.png", Kind: folio.ImageKindDetailed}},
				}, nil
			}},
			Downloader: &mock.Downloader{DownloadFn: func(_ context.Context, url string) (*folio.Asset, error) {
				return &folio.Asset{URL: url, ContentType: "image/png", Data: data}, nil
			}},
			Writer: &mock.PageWriter{WritePageFn: func(_ context.Context, page *folio.Page) error {
				written = append(written, page.ProjectID)
				return nil
			}},
			Store:        store.mock(),
			PublicPrefix: "/images/projects",
			RetryDelays:  []time.Duration{0, 0, 0},
		}

		summaryPath := filepath.Join(t.TempDir(), "out", "pages.json")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: testConfig(t),
			Projects: staticProjects(
				&folio.Project{ID: "icy-veins", Title: "Icy Veins", PageURL: "https://legacy.example.com/portfolio/icy-veins"},
				&folio.Project{ID: "tabstats", Title: "Tabstats"},
			),
			Harvester: harvester,
		}

		err := (&main.PagesCmd{JSON: summaryPath}).Run(deps)

		require.NoError(t, err)
		assert.True(t, store.committed)
		assert.Equal(t, []string{"icy-veins"}, written)
		output := stdout.String()
		assert.Contains(t, output, "Scraped 1 pages, downloaded 1 images")
		assert.Contains(t, output, "Skipped 1 projects without a page URL")

		raw, err := os.ReadFile(summaryPath)
		require.NoError(t, err)
		var summary []main.PageSummary
		require.NoError(t, json.Unmarshal(raw, &summary))
		require.Len(t, summary, 1)
		assert.Equal(t, "icy-veins", summary[0].ProjectID)
		assert.Equal(t, "Lead designer", summary[0].CaseStudy.Role)
		require.Len(t, summary[0].Images, 1)
		assert.Equal(t, "/images/projects/icy-veins/hero.png", summary[0].Images[0].LocalPath)
	})

	t.Run("aborts store when nothing was downloaded", func(t *testing.T) {
		t.Parallel()

		store := &recordingStore{}
		harvester := &crawl.Harvester{
			Store:       store.mock(),
			RetryDelays: []time.Duration{0, 0, 0},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Config:    testConfig(t),
			Projects:  staticProjects(&folio.Project{ID: "tabstats", Title: "Tabstats"}),
			Harvester: harvester,
		}

		err := (&main.PagesCmd{}).Run(deps)

		require.NoError(t, err)
		assert.True(t, store.aborted)
		assert.False(t, store.committed)
	})
}

func TestSummarizePages(t *testing.T) {
	t.Parallel()

	result := &crawl.PageResult{
		Pages: []*folio.Page{
			{ProjectID: "atlas", SourceURL: "https://legacy.example.com/portfolio/atlas", Title: "Atlas"},
			{ProjectID: "icy-veins", SourceURL: "https://legacy.example.com/portfolio/icy-veins", Title: "Icy Veins"},
		},
		Images: []*folio.Image{
			{ProjectID: "icy-veins", Kind: folio.ImageKindOldVersion, LocalPath: "/p/icy-veins/old-version.png", SourceURL: "https://x/old.png"},
		},
	}

	summary := main.SummarizePages(result)

	require.Len(t, summary, 2)
	assert.Empty(t, summary[0].Images)
	assert.NotNil(t, summary[0].Images)
	assert.Equal(t, []main.PageImageEntry{
		{Kind: folio.ImageKindOldVersion, LocalPath: "/p/icy-veins/old-version.png", SourceURL: "https://x/old.png"},
	}, summary[1].Images)
}
