package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
	"github.com/folioworks/folio/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *toml.Config
	Projects  folio.ProjectSource
	Fetcher   folio.Fetcher
	Matcher   folio.ImageMatcher
	Source    folio.URLSource
	Images    folio.ImageService
	Pages     folio.PageService
	Harvester *crawl.Harvester

	// Probe is only wired for the probe command.
	Probe func(ctx context.Context, sourceURL string) (*ProbeResult, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string        `short:"C" default:"folio.toml" help:"Path to the TOML configuration file"`
	ProjectsTS  string        `name:"projects-ts" type:"path" help:"Read projects from a projects.ts file instead of the config"`
	Debug       bool          `help:"Log every fetch, download and match to stderr"`
	Render      bool          `short:"r" help:"Always render pages in headless Chrome"`
	Timeout     time.Duration `short:"t" help:"Timeout per request (overrides config)"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit (overrides config)"`

	Match    MatchCmd    `cmd:"" help:"Show which image the listing page pairs with each project"`
	Images   ImagesCmd   `cmd:"" help:"Download the primary image of every project"`
	Pages    PagesCmd    `cmd:"" help:"Scrape case-study pages into markdown and images"`
	Discover DiscoverCmd `cmd:"" help:"List project pages found on the legacy site"`
	Probe    ProbeCmd    `cmd:"" help:"Report whether the legacy site needs JavaScript rendering"`
	List     ListCmd     `cmd:"" help:"List recorded images"`
	Favicon  FaviconCmd  `cmd:"" help:"Generate favicon files from a logo"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	All bool `short:"a" help:"Print every candidate, not just the primary image"`
}

// ImagesCmd is the "images" subcommand.
type ImagesCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	JSON string `name:"json" type:"path" help:"Write a JSON summary of the scraped pages to this file"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct{}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Project string `short:"p" help:"Only images of this project"`
	Kind    string `short:"k" help:"Only images of this kind (primary, detailed, design-system, old-version)"`
}

// FaviconCmd is the "favicon" subcommand.
type FaviconCmd struct {
	Logo string `arg:"" type:"existingfile" help:"Logo image (PNG, JPEG, GIF or WebP)"`
	Out  string `short:"o" default:"app" type:"path" help:"Directory to write the icons to"`
}
