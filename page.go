package folio

import (
	"context"
	"time"
)

// CaseStudy holds the structured text of a project's case-study page.
// Every field is best effort and may be empty.
type CaseStudy struct {
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Description    string   `json:"description"`
	Timeline       string   `json:"timeline"`
	Role           string   `json:"role"`
	Goals          []string `json:"goals"`
	ResearchMethod string   `json:"researchMethod"`
	Findings       []string `json:"findings"`
}

// Page represents a scraped case-study page.
type Page struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	SourceURL   string     `json:"sourceUrl"`
	Title       string     `json:"title"`
	Content     string     `json:"content"` // Markdown
	ContentHash string     `json:"contentHash"`
	CaseStudy   *CaseStudy `json:"caseStudy,omitempty"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.ProjectID == "" {
		return Errorf(EINVALID, "page project ID required")
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "page source URL required")
	}
	return nil
}

// PageWriter writes pages to storage.
type PageWriter interface {
	WritePage(ctx context.Context, page *Page) error
}

// PageService represents a service for managing scraped pages.
type PageService interface {
	// CreatePage records a scraped page, replacing any earlier page
	// recorded for the same project.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByProject retrieves the page scraped for a project.
	// Returns ENOTFOUND if no page has been recorded.
	FindPageByProject(ctx context.Context, projectID string) (*Page, error)

	// FindPages retrieves all recorded pages ordered by project ID.
	FindPages(ctx context.Context) ([]*Page, error)
}

// URLSource discovers project page URLs from a site.
// Implementations hide the complexity of sitemap vs link discovery.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]ProjectLink, error)
}

// PageAnalysis holds the structured parts of a case-study page.
type PageAnalysis struct {
	CaseStudy *CaseStudy
	Images    []PageImage
}

// PageAnalyzer extracts case-study text and classified images from a page.
type PageAnalyzer interface {
	// AnalyzePage parses html; pageURL resolves relative image sources.
	AnalyzePage(html string, pageURL string) (*PageAnalysis, error)
}
