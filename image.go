package folio

import (
	"context"
	"time"
)

// ImageKind describes the role of a downloaded image.
type ImageKind string

// ImageKind constants.
const (
	ImageKindPrimary      ImageKind = "primary"
	ImageKindDetailed     ImageKind = "detailed"
	ImageKindDesignSystem ImageKind = "design-system"
	ImageKindOldVersion   ImageKind = "old-version"
)

// Valid reports whether k is one of the ImageKind constants.
func (k ImageKind) Valid() bool {
	switch k {
	case ImageKindPrimary, ImageKindDetailed, ImageKindDesignSystem, ImageKindOldVersion:
		return true
	}
	return false
}

// Image is the record of an image downloaded for a project.
type Image struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	SourceURL   string    `json:"sourceUrl"`
	LocalPath   string    `json:"localPath"`
	Kind        ImageKind `json:"kind"`
	ContentType string    `json:"contentType"`
	ContentHash string    `json:"contentHash"`
	Size        int       `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the image contains invalid fields.
func (i *Image) Validate() error {
	if i.ProjectID == "" {
		return Errorf(EINVALID, "image project ID required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "image source URL required")
	}
	return nil
}

// PageImage is an image found on a case-study page.
type PageImage struct {
	URL  string
	Kind ImageKind
}

// ImageService represents a service for managing image records.
type ImageService interface {
	// CreateImage records a downloaded image, replacing any record with
	// the same project and local path.
	CreateImage(ctx context.Context, img *Image) error

	// FindImageByID retrieves an image by ID.
	// Returns ENOTFOUND if the image does not exist.
	FindImageByID(ctx context.Context, id string) (*Image, error)

	// FindImages retrieves images matching the filter.
	FindImages(ctx context.Context, filter ImageFilter) ([]*Image, error)

	// DeleteImagesByProject removes all image records for a project.
	DeleteImagesByProject(ctx context.Context, projectID string) error
}

// ImageFilter represents a filter for FindImages.
type ImageFilter struct {
	ProjectID *string    `json:"projectId"`
	Kind      *ImageKind `json:"kind"`
	SourceURL *string    `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
