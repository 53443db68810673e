package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/folioworks/folio"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ folio.ImageService = (*ImageService)(nil)

// ImageService implements folio.ImageService using SQLite.
type ImageService struct {
	db *DB
}

// NewImageService creates a new ImageService.
func NewImageService(db *DB) *ImageService {
	return &ImageService{db: db}
}

const imageColumns = `id, project_id, source_url, local_path, kind, content_type, content_hash,
	size, width, height, position, fetched_at`

// CreateImage records an image. A record with the same project and local
// path is replaced but keeps its ID, which is written back to img.ID.
func (s *ImageService) CreateImage(ctx context.Context, img *folio.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}

	if img.FetchedAt.IsZero() {
		img.FetchedAt = time.Now()
	}
	img.FetchedAt = img.FetchedAt.UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO images (`+imageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, local_path) DO UPDATE SET
			source_url = excluded.source_url,
			kind = excluded.kind,
			content_type = excluded.content_type,
			content_hash = excluded.content_hash,
			size = excluded.size,
			width = excluded.width,
			height = excluded.height,
			position = excluded.position,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), img.ProjectID, img.SourceURL, img.LocalPath, string(img.Kind),
		img.ContentType, img.ContentHash, img.Size, img.Width, img.Height, img.Position,
		img.FetchedAt.Format(time.RFC3339)).Scan(&img.ID)
}

// FindImageByID retrieves an image by ID.
func (s *ImageService) FindImageByID(ctx context.Context, id string) (*folio.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, `SELECT `+imageColumns+` FROM images WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, folio.Errorf(folio.ENOTFOUND, "image not found")
	}
	return img, err
}

// FindImages retrieves images matching the filter, ordered by project and
// position.
func (s *ImageService) FindImages(ctx context.Context, filter folio.ImageFilter) ([]*folio.Image, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + imageColumns + ` FROM images WHERE 1=1`)

	if filter.ProjectID != nil {
		query.WriteString(" AND project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY project_id ASC, position ASC, local_path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*folio.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// DeleteImagesByProject removes all image records for a project.
func (s *ImageService) DeleteImagesByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM images WHERE project_id = ?", projectID)
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanImage(row scanner) (*folio.Image, error) {
	var img folio.Image
	var kind, fetchedAt string

	if err := row.Scan(&img.ID, &img.ProjectID, &img.SourceURL, &img.LocalPath, &kind,
		&img.ContentType, &img.ContentHash, &img.Size, &img.Width, &img.Height,
		&img.Position, &fetchedAt); err != nil {
		return nil, err
	}

	img.Kind = folio.ImageKind(kind)

	var err error
	if img.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &img, nil
}
