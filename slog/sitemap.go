// Package slog provides logging decorators for folio services. They are
// wired in only when debug output is requested.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/folioworks/folio"
)

var _ folio.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService records every sitemap lookup made while searching
// a legacy site for project pages: the site, how many pages came back and
// whether a path filter narrowed them.
type LoggingSitemapService struct {
	next   folio.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService decorates next with logger.
func NewLoggingSitemapService(next folio.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs implements folio.SitemapService.
func (l *LoggingSitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *folio.URLFilter) (pages []string, err error) {
	start := time.Now()
	pages, err = l.next.DiscoverURLs(ctx, siteURL, filter)
	l.logger.Info("sitemap lookup",
		slog.String("site", siteURL),
		slog.Int("pages", len(pages)),
		slog.Bool("filtered", filter != nil),
		slog.Duration("duration", time.Since(start)),
		slog.Any("err", err),
	)
	return pages, err
}
