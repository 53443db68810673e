package main

import (
	"fmt"
	"os"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/favicon"
)

// Run executes the favicon command.
func (c *FaviconCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Logo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	logo, err := favicon.Decode(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	paths, err := favicon.Generate(logo, c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(deps.Stdout, "wrote %s\n", p)
	}
	return nil
}
