package main

import (
	"fmt"

	"github.com/folioworks/folio"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	links, err := deps.Source.Discover(deps.Ctx, deps.Config.BaseURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintf(deps.Stdout, "No project pages found under %s\n", deps.Config.LinkPrefix)
		return nil
	}

	for _, l := range links {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", l.ProjectID(), l.URL)
	}
	fmt.Fprintf(deps.Stdout, "Found %d project pages\n", len(links))
	return nil
}
