package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
)

// PageSummary is one entry of the --json summary file.
type PageSummary struct {
	ProjectID string           `json:"projectId"`
	SourceURL string           `json:"sourceUrl"`
	Title     string           `json:"title"`
	CaseStudy *folio.CaseStudy `json:"caseStudy,omitempty"`
	Images    []PageImageEntry `json:"images"`
}

// PageImageEntry is a downloaded page image in the summary file.
type PageImageEntry struct {
	Kind      folio.ImageKind `json:"kind"`
	LocalPath string          `json:"localPath"`
	SourceURL string          `json:"sourceUrl"`
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.LoadProjects(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	result, err := deps.Harvester.HarvestPages(deps.Ctx, projects, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d pages, downloaded %d images (%s)\n",
		len(result.Pages), len(result.Images), crawl.FormatBytes(result.Bytes))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d projects without a page URL\n", len(result.Skipped))
	}
	for _, f := range result.Failed {
		fmt.Fprintf(deps.Stderr, "failed %s %s: %v\n", f.ProjectID, f.URL, f.Err)
	}

	if c.JSON != "" {
		if err := writeSummary(c.JSON, SummarizePages(result)); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing summary: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote summary to %s\n", c.JSON)
	}
	return nil
}

// SummarizePages groups the harvested images under their pages.
func SummarizePages(result *crawl.PageResult) []PageSummary {
	images := make(map[string][]PageImageEntry)
	for _, img := range result.Images {
		images[img.ProjectID] = append(images[img.ProjectID], PageImageEntry{
			Kind:      img.Kind,
			LocalPath: img.LocalPath,
			SourceURL: img.SourceURL,
		})
	}

	summary := make([]PageSummary, 0, len(result.Pages))
	for _, p := range result.Pages {
		entries := images[p.ProjectID]
		if entries == nil {
			entries = []PageImageEntry{}
		}
		summary = append(summary, PageSummary{
			ProjectID: p.ProjectID,
			SourceURL: p.SourceURL,
			Title:     p.Title,
			CaseStudy: p.CaseStudy,
			Images:    entries,
		})
	}
	return summary
}

func writeSummary(path string, summary []PageSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
