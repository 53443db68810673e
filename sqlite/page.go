package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ folio.PageService = (*PageService)(nil)

// PageService implements folio.PageService using SQLite. The case study is
// stored as a JSON column.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = `id, project_id, source_url, title, content, content_hash, case_study, fetched_at`

// CreatePage records a page, replacing the earlier page of the same
// project. The stored ID is written back to page.ID.
func (s *PageService) CreatePage(ctx context.Context, page *folio.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	var caseStudy string
	if page.CaseStudy != nil {
		b, err := json.Marshal(page.CaseStudy)
		if err != nil {
			return fmt.Errorf("failed to encode case study: %w", err)
		}
		caseStudy = string(b)
	}

	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id) DO UPDATE SET
			source_url = excluded.source_url,
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			case_study = excluded.case_study,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), page.ProjectID, page.SourceURL, page.Title, page.Content,
		page.ContentHash, caseStudy, page.FetchedAt.Format(time.RFC3339)).Scan(&page.ID)
}

// FindPageByProject retrieves the page recorded for a project.
func (s *PageService) FindPageByProject(ctx context.Context, projectID string) (*folio.Page, error) {
	page, err := scanPage(s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE project_id = ?`, projectID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, folio.Errorf(folio.ENOTFOUND, "page not found")
	}
	return page, err
}

// FindPages retrieves all pages ordered by project ID.
func (s *PageService) FindPages(ctx context.Context) ([]*folio.Page, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY project_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*folio.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

func scanPage(row scanner) (*folio.Page, error) {
	var page folio.Page
	var caseStudy, fetchedAt string

	if err := row.Scan(&page.ID, &page.ProjectID, &page.SourceURL, &page.Title,
		&page.Content, &page.ContentHash, &caseStudy, &fetchedAt); err != nil {
		return nil, err
	}

	if caseStudy != "" {
		page.CaseStudy = &folio.CaseStudy{}
		if err := json.Unmarshal([]byte(caseStudy), page.CaseStudy); err != nil {
			return nil, fmt.Errorf("failed to decode case study: %w", err)
		}
	}

	var err error
	if page.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &page, nil
}
