package mock

import (
	"context"
	"time"

	"github.com/folioworks/folio"
)

var _ folio.ProjectSource = (*ProjectSource)(nil)

// ProjectSource is a mock implementation of folio.ProjectSource.
type ProjectSource struct {
	LoadProjectsFn func(ctx context.Context) ([]*folio.Project, error)
}

func (s *ProjectSource) LoadProjects(ctx context.Context) ([]*folio.Project, error) {
	return s.LoadProjectsFn(ctx)
}

var _ folio.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of folio.LinkExtractor.
type LinkExtractor struct {
	ExtractProjectLinksFn func(html string, baseURL string, pathPrefix string) ([]folio.ProjectLink, error)
}

func (e *LinkExtractor) ExtractProjectLinks(html string, baseURL string, pathPrefix string) ([]folio.ProjectLink, error) {
	return e.ExtractProjectLinksFn(html, baseURL, pathPrefix)
}

var _ folio.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of folio.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]folio.ProjectLink, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]folio.ProjectLink, error) {
	return s.DiscoverFn(ctx, sourceURL)
}

var _ folio.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of folio.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *folio.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ folio.Prober = (*Prober)(nil)

// Prober is a mock implementation of folio.Prober.
type Prober struct {
	DetectFn      func(html string) folio.Platform
	RequiresJSFn  func(platform folio.Platform) (requires bool, known bool)
	RenderDelayFn func(platform folio.Platform) time.Duration
}

func (p *Prober) Detect(html string) folio.Platform {
	return p.DetectFn(html)
}

func (p *Prober) RequiresJS(platform folio.Platform) (requires bool, known bool) {
	return p.RequiresJSFn(platform)
}

func (p *Prober) RenderDelay(platform folio.Platform) time.Duration {
	if p.RenderDelayFn != nil {
		return p.RenderDelayFn(platform)
	}
	return 0
}
