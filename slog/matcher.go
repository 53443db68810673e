package slog

import (
	"log/slog"
	"time"

	"github.com/folioworks/folio"
)

// Ensure LoggingImageMatcher implements folio.ImageMatcher.
var _ folio.ImageMatcher = (*LoggingImageMatcher)(nil)

// LoggingImageMatcher wraps an ImageMatcher with debug logging: one record
// per call plus one per label with its candidate count and best match.
type LoggingImageMatcher struct {
	next   folio.ImageMatcher
	logger *slog.Logger
}

// NewLoggingImageMatcher creates a new LoggingImageMatcher.
func NewLoggingImageMatcher(next folio.ImageMatcher, logger *slog.Logger) *LoggingImageMatcher {
	return &LoggingImageMatcher{next: next, logger: logger}
}

// MatchImages delegates to the wrapped matcher and logs each label's result.
func (m *LoggingImageMatcher) MatchImages(html string, labels []string) (matches []*folio.ImageMatch, err error) {
	defer func(begin time.Time) {
		matched := 0
		for _, match := range matches {
			if primary := match.Primary(); primary != "" {
				matched++
				m.logger.Info("label match",
					"label", match.Label,
					"candidates", len(match.Images),
					"primary", primary,
				)
			} else {
				m.logger.Info("label match", "label", match.Label, "candidates", 0)
			}
		}
		m.logger.Info("image matching",
			"labels", len(labels),
			"matched", matched,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.MatchImages(html, labels)
}

// Ensure LoggingPageAnalyzer implements folio.PageAnalyzer.
var _ folio.PageAnalyzer = (*LoggingPageAnalyzer)(nil)

// LoggingPageAnalyzer wraps a PageAnalyzer with debug logging.
type LoggingPageAnalyzer struct {
	next   folio.PageAnalyzer
	logger *slog.Logger
}

// NewLoggingPageAnalyzer creates a new LoggingPageAnalyzer.
func NewLoggingPageAnalyzer(next folio.PageAnalyzer, logger *slog.Logger) *LoggingPageAnalyzer {
	return &LoggingPageAnalyzer{next: next, logger: logger}
}

// AnalyzePage delegates to the wrapped analyzer and logs what was found.
func (a *LoggingPageAnalyzer) AnalyzePage(html string, pageURL string) (analysis *folio.PageAnalysis, err error) {
	defer func(begin time.Time) {
		var images int
		var title string
		if analysis != nil {
			images = len(analysis.Images)
			if analysis.CaseStudy != nil {
				title = analysis.CaseStudy.Title
			}
		}
		a.logger.Info("page analysis",
			"url", pageURL,
			"title", title,
			"images", images,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.AnalyzePage(html, pageURL)
}
