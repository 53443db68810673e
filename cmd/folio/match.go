package main

import (
	"fmt"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
)

// Run executes the match command. Nothing is downloaded or written.
func (c *MatchCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.LoadProjects(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	logf := func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, format+"\n", args...)
	}
	html, err := crawl.FetchWithRetry(deps.Ctx, deps.Config.ListingURL, deps.Fetcher.Fetch, logf)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error fetching %s: %v\n", deps.Config.ListingURL, err)
		return err
	}

	labels := make([]string, len(projects))
	for i, p := range projects {
		labels[i] = p.Title
	}
	matches, err := deps.Matcher.MatchImages(html, labels)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	matched := 0
	for i, p := range projects {
		m := matches[i]
		primary := m.Primary()
		if primary == "" {
			fmt.Fprintf(deps.Stdout, "%s  (no match)\n", p.ID)
			continue
		}
		matched++
		fmt.Fprintf(deps.Stdout, "%s  %s\n", p.ID, primary)
		if c.All {
			for _, candidate := range m.Images[1:] {
				fmt.Fprintf(deps.Stdout, "    %s\n", candidate)
			}
		}
	}
	fmt.Fprintf(deps.Stdout, "Matched %d of %d projects\n", matched, len(projects))
	return nil
}
