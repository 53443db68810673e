package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/folioworks/folio"
	main "github.com/folioworks/folio/cmd/folio"
	"github.com/folioworks/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists project IDs and URLs", func(t *testing.T) {
		t.Parallel()

		var discovered string
		source := &mock.URLSource{
			DiscoverFn: func(_ context.Context, sourceURL string) ([]folio.ProjectLink, error) {
				discovered = sourceURL
				return []folio.ProjectLink{
					{URL: "https://legacy.example.com/portfolio/icy-veins", Text: "Icy Veins"},
					{URL: "https://legacy.example.com/portfolio/tabstats", Text: "Tabstats Design System"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: testConfig(t),
			Source: source,
		}

		err := (&main.DiscoverCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://legacy.example.com", discovered)
		output := stdout.String()
		assert.Contains(t, output, "icy-veins  https://legacy.example.com/portfolio/icy-veins")
		assert.Contains(t, output, "tabstats-design-system  https://legacy.example.com/portfolio/tabstats")
		assert.Contains(t, output, "Found 2 project pages")
	})

	t.Run("reports empty result", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: testConfig(t),
			Source: &mock.URLSource{DiscoverFn: func(_ context.Context, _ string) ([]folio.ProjectLink, error) {
				return []folio.ProjectLink{}, nil
			}},
		}

		err := (&main.DiscoverCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No project pages found under /portfolio/")
	})

	t.Run("returns discovery error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: testConfig(t),
			Source: &mock.URLSource{DiscoverFn: func(_ context.Context, _ string) ([]folio.ProjectLink, error) {
				return nil, errors.New("sitemap unreachable")
			}},
		}

		err := (&main.DiscoverCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
