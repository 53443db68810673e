// Package toml loads folio configuration from a TOML file.
//
// A missing file is not an error: every setting has a default, so a bare
// working directory still yields a usable Config. The [[projects]] table,
// when present, is the list of portfolio projects to migrate.
package toml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/folioworks/folio"
	"github.com/pelletier/go-toml/v2"
)

// Default values applied to settings the file leaves out.
const (
	DefaultPath           = "folio.toml"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeoutSeconds = 30
	DefaultRateLimit      = 2.0
	DefaultConcurrency    = 4
	DefaultImageDir       = "public/images/projects"
	DefaultPageDir        = "content/projects"
	DefaultPublicPrefix   = "/images/projects"
	DefaultDBPath         = "folio.db"
	DefaultLinkPrefix     = "/portfolio/"
)

// DBPathEnv overrides the configured database path when set.
const DBPathEnv = "FOLIO_DB"

// Config holds every setting the commands need.
type Config struct {
	// BaseURL is the legacy site's home page.
	BaseURL string `toml:"base_url"`
	// ListingURL is the page showing the project cards. Defaults to BaseURL.
	ListingURL string `toml:"listing_url"`

	UserAgent      string  `toml:"user_agent"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
	Concurrency    int     `toml:"concurrency"`

	ImageDir     string `toml:"image_dir"`
	PageDir      string `toml:"page_dir"`
	PublicPrefix string `toml:"public_prefix"`
	DBPath       string `toml:"db_path"`
	LinkPrefix   string `toml:"link_prefix"`

	Projects []*folio.Project `toml:"projects"`
}

// Default returns a Config with every default applied and no projects.
func Default() Config {
	return Config{
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: DefaultTimeoutSeconds,
		RateLimit:      DefaultRateLimit,
		Concurrency:    DefaultConcurrency,
		ImageDir:       DefaultImageDir,
		PageDir:        DefaultPageDir,
		PublicPrefix:   DefaultPublicPrefix,
		DBPath:         DefaultDBPath,
		LinkPrefix:     DefaultLinkPrefix,
	}
}

// Load reads the file at path over the defaults, applies the environment
// and validates the result. It reports whether the file existed; a missing
// file yields the defaults.
func Load(path string) (*Config, bool, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	exists := true

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := cfg.decode(file); err != nil {
			return nil, false, err
		}
	}

	if db := strings.TrimSpace(os.Getenv(DBPathEnv)); db != "" {
		cfg.DBPath = db
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

// Parse decodes TOML data over the defaults and validates the result. The
// environment is not consulted.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(strings.NewReader(data)); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return folio.Errorf(folio.EINVALID, "unknown config keys: %s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return folio.Errorf(folio.EINVALID, "parse config at line %d column %d: %s", row, col, decodeErr.Error())
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.ListingURL = strings.TrimSpace(c.ListingURL)
	if c.ListingURL == "" {
		c.ListingURL = c.BaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.LinkPrefix == "" {
		c.LinkPrefix = DefaultLinkPrefix
	}
	for _, p := range c.Projects {
		if p == nil {
			continue
		}
		p.ID = strings.TrimSpace(p.ID)
		p.Title = strings.TrimSpace(p.Title)
		if p.ID == "" {
			p.ID = folio.Slugify(p.Title)
		}
	}
}

// Validate reports the first unusable setting as an EINVALID error.
func (c *Config) Validate() error {
	if err := validateURL("base_url", c.BaseURL); err != nil {
		return err
	}
	if err := validateURL("listing_url", c.ListingURL); err != nil {
		return err
	}
	if c.TimeoutSeconds <= 0 {
		return folio.Errorf(folio.EINVALID, "timeout_seconds must be positive")
	}
	if c.RateLimit < 0 {
		return folio.Errorf(folio.EINVALID, "rate_limit must not be negative")
	}
	if c.Concurrency <= 0 {
		return folio.Errorf(folio.EINVALID, "concurrency must be positive")
	}

	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p == nil {
			return folio.Errorf(folio.EINVALID, "project %d is empty", i+1)
		}
		if err := p.Validate(); err != nil {
			return folio.Errorf(folio.EINVALID, "project %d: %s", i+1, folio.ErrorMessage(err))
		}
		if seen[p.ID] {
			return folio.Errorf(folio.EINVALID, "duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return nil
	}
	if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return folio.Errorf(folio.EINVALID, "%s must be an absolute http(s) URL: %q", name, raw)
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RequireBaseURL returns EINVALID when base_url is not configured.
func (c *Config) RequireBaseURL() error {
	if c.BaseURL == "" {
		return folio.Errorf(folio.EINVALID, "base_url is required")
	}
	return nil
}

var _ folio.ProjectSource = (*ProjectSource)(nil)

// ProjectSource serves the [[projects]] table of a Config.
type ProjectSource struct {
	Projects []*folio.Project
}

// ProjectSource returns the configured projects as a folio.ProjectSource.
func (c *Config) ProjectSource() *ProjectSource {
	return &ProjectSource{Projects: c.Projects}
}

// LoadProjects implements folio.ProjectSource. It returns ENOTFOUND when
// no projects are configured.
func (s *ProjectSource) LoadProjects(ctx context.Context) ([]*folio.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Projects) == 0 {
		return nil, folio.Errorf(folio.ENOTFOUND, "no projects configured")
	}
	return s.Projects, nil
}
