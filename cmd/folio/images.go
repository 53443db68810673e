package main

import (
	"fmt"
	"strings"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
)

// Run executes the images command.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.LoadProjects(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	result, err := deps.Harvester.HarvestPrimary(deps.Ctx, deps.Config.ListingURL, projects, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d images (%s)\n", len(result.Images), crawl.FormatBytes(result.Bytes))
	for _, p := range result.Unmatched {
		fmt.Fprintf(deps.Stdout, "No image found for %s (%q)\n", p.ID, p.Title)
	}
	for _, f := range result.Failed {
		fmt.Fprintf(deps.Stderr, "failed %s: %v\n", f.ProjectID, f.Err)
	}

	if len(result.Images) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprint(deps.Stdout, ImageFields(projects, result.Images))
	}
	return nil
}

// ImageFields renders the image: line of each project for pasting into the
// new site's project table, in project order. Projects without a
// downloaded image get a comment instead.
func ImageFields(projects []*folio.Project, images []*folio.Image) string {
	paths := make(map[string]string, len(images))
	for _, img := range images {
		if img.Kind == folio.ImageKindPrimary {
			paths[img.ProjectID] = img.LocalPath
		}
	}

	var b strings.Builder
	for _, p := range projects {
		if path, ok := paths[p.ID]; ok {
			fmt.Fprintf(&b, "// %s\nimage: %q,\n", p.ID, path)
		} else {
			fmt.Fprintf(&b, "// %s: no image found\n", p.ID)
		}
	}
	return b.String()
}

// progressPrinter reports harvest progress on a single rewritten line.
func progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		phase := "images"
		if e.Phase == crawl.PhasePages {
			phase = "pages"
		}
		switch e.Type {
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\rskip %s: %v\n", e.URL, e.Error)
			fmt.Fprintf(deps.Stdout, "\r%s [%d/%d] %s", phase, e.Completed, e.Total, crawl.TruncateURL(e.URL, 40))
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r%s [%d/%d] %s", phase, e.Completed, e.Total, crawl.TruncateURL(e.URL, 40))
		case crawl.ProgressFinished:
			fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
		}
	}
}
