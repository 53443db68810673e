package main

import (
	"fmt"

	"github.com/folioworks/folio"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter folio.ImageFilter
	if c.Project != "" {
		filter.ProjectID = &c.Project
	}
	if c.Kind != "" {
		kind := folio.ImageKind(c.Kind)
		if !kind.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown image kind %q\n", c.Kind)
			return folio.Errorf(folio.EINVALID, "unknown image kind %q", c.Kind)
		}
		filter.Kind = &kind
	}

	images, err := deps.Images.FindImages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}

	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No images recorded. Use 'folio images' to download some.")
		return nil
	}

	for _, img := range images {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %dx%d  %s\n",
			img.ProjectID, img.Kind, img.LocalPath, img.Width, img.Height, img.SourceURL)
	}
	return nil
}
