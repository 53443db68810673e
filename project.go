package folio

import "context"

// Project represents a portfolio entry whose media is being migrated.
// Title is the label matched against the legacy site's markup.
type Project struct {
	ID      string `json:"id" toml:"id"`
	Title   string `json:"title" toml:"title"`
	PageURL string `json:"pageUrl" toml:"page"`
	Image   string `json:"image" toml:"image"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "project ID required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "project title required")
	}
	return nil
}

// ProjectSource loads the table of projects to match against.
type ProjectSource interface {
	// LoadProjects returns all projects in declaration order.
	LoadProjects(ctx context.Context) ([]*Project, error)
}

// ProjectLink is a link to a project page discovered on the legacy site.
type ProjectLink struct {
	URL  string
	Text string
}

// ProjectID derives a project ID from the link text.
func (l ProjectLink) ProjectID() string {
	return Slugify(l.Text)
}

// LinkExtractor finds project page links in HTML.
type LinkExtractor interface {
	// ExtractProjectLinks returns same-host links whose path contains
	// pathPrefix. The baseURL is used to resolve relative URLs.
	ExtractProjectLinks(html string, baseURL string, pathPrefix string) ([]ProjectLink, error)
}
