package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/folioworks/folio"
	"github.com/folioworks/folio/crawl"
	"github.com/folioworks/folio/fs"
	"github.com/folioworks/folio/goquery"
	"github.com/folioworks/folio/htmltomarkdown"
	foliohttp "github.com/folioworks/folio/http"
	"github.com/folioworks/folio/readability"
	folioslog "github.com/folioworks/folio/slog"
	"github.com/folioworks/folio/sqlite"
	"github.com/folioworks/folio/toml"
	"github.com/folioworks/folio/trafilatura"
	"github.com/folioworks/folio/typescript"
	"github.com/lmittmann/tint"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DBPath overrides the configured database path when set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("folio"),
		kong.Description("Migrate project images and case studies from a legacy portfolio site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'folio --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if cli.Debug {
		deps.Logger = slog.New(tint.NewHandler(stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		}))
	}

	// favicon works on local files only
	if cmd == "favicon" {
		return kongCtx.Run(deps)
	}

	cfg, exists, err := toml.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", folio.ErrorMessage(err))
		return err
	}
	if !exists && cli.Config != toml.DefaultPath {
		fmt.Fprintf(stderr, "error: config file %q not found\n", cli.Config)
		return folio.Errorf(folio.ENOTFOUND, "config file %q not found", cli.Config)
	}
	if cli.Timeout > 0 {
		cfg.TimeoutSeconds = max(1, int(cli.Timeout.Round(time.Second)/time.Second))
	}
	if cli.Concurrency > 0 {
		cfg.Concurrency = cli.Concurrency
	}
	deps.Config = cfg

	if cmd == "list" {
		if err := m.openDB(cfg, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Images = sqlite.NewImageService(m.DB)
		return kongCtx.Run(deps)
	}

	if err := cfg.RequireBaseURL(); err != nil {
		fmt.Fprintf(stderr, "Hint: set base_url in %s\n", cli.Config)
		return err
	}
	defer m.Close()

	if cli.ProjectsTS != "" {
		deps.Projects = typescript.NewProjectSource(cli.ProjectsTS)
	} else {
		deps.Projects = cfg.ProjectSource()
	}

	httpOpts := []foliohttp.Option{
		foliohttp.WithTimeout(cfg.Timeout()),
		foliohttp.WithUserAgent(cfg.UserAgent),
	}
	httpFetcher := foliohttp.NewFetcher(httpOpts...)
	m.closers = append(m.closers, httpFetcher)
	chrome := newBrowser(cfg.Timeout())
	m.closers = append(m.closers, chrome)

	detector := goquery.NewDetector()
	extractor := &crawl.FallbackExtractor{
		Primary:  trafilatura.NewExtractor(),
		Fallback: readability.NewExtractor(),
	}

	if cmd == "probe" {
		deps.Probe = func(ctx context.Context, sourceURL string) (*ProbeResult, error) {
			return ProbeFetcher(ctx, sourceURL, httpFetcher, chrome, detector, extractor), nil
		}
		return kongCtx.Run(deps)
	}

	var fetcher folio.Fetcher = httpFetcher
	if cli.Render {
		fetcher = chrome
	} else {
		probe := ProbeFetcher(ctx, cfg.ListingURL, httpFetcher, chrome, detector, extractor)
		fetcher = probe.Fetcher
		deps.Logger.Info("probe", "url", cfg.ListingURL, "platform", probe.Platform, "render", probe.Render)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		downloader folio.Downloader     = foliohttp.NewDownloader(httpOpts...)
		matcher    folio.ImageMatcher   = goquery.NewImageMatcher()
		analyzer   folio.PageAnalyzer   = goquery.NewPageAnalyzer()
		sitemaps   folio.SitemapService = foliohttp.NewSitemapService(httpOpts...)
	)
	if cli.Debug {
		fetcher = folioslog.NewLoggingFetcher(fetcher, deps.Logger)
		downloader = folioslog.NewLoggingDownloader(downloader, deps.Logger)
		matcher = folioslog.NewLoggingImageMatcher(matcher, deps.Logger)
		analyzer = folioslog.NewLoggingPageAnalyzer(analyzer, deps.Logger)
		sitemaps = folioslog.NewLoggingSitemapService(sitemaps, deps.Logger)
	}
	deps.Fetcher = fetcher
	deps.Matcher = matcher
	deps.Source = &crawl.Source{
		Sitemaps:   sitemaps,
		Fetcher:    fetcher,
		Links:      goquery.NewLinkExtractor(),
		PathPrefix: cfg.LinkPrefix,
	}

	if cmd == "images" || cmd == "pages" {
		if err := m.openDB(cfg, stderr); err != nil {
			return err
		}
		deps.Images = sqlite.NewImageService(m.DB)
		deps.Pages = sqlite.NewPageService(m.DB)

		converter := htmltomarkdown.NewConverter()
		converter.Domain = siteOrigin(cfg.BaseURL)

		imageDir := filepath.Clean(cfg.ImageDir)
		deps.Harvester = &crawl.Harvester{
			Fetcher:      fetcher,
			Downloader:   downloader,
			Matcher:      matcher,
			Analyzer:     analyzer,
			Extractor:    extractor,
			Converter:    converter,
			Store:        fs.NewAssetStore(filepath.Dir(imageDir), filepath.Base(imageDir)),
			Images:       deps.Images,
			Pages:        deps.Pages,
			Writer:       fs.NewWriter(cfg.PageDir),
			RateLimiter:  crawl.NewDomainLimiter(cfg.RateLimit),
			PublicPrefix: cfg.PublicPrefix,
			Concurrency:  cfg.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(cfg *toml.Config, stderr io.Writer) error {
	path := cfg.DBPath
	if m.DBPath != "" {
		path = m.DBPath
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", toml.DBPathEnv)
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// siteOrigin returns scheme://host of rawURL.
func siteOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
