package mock

import (
	"context"

	"github.com/folioworks/folio"
)

var _ folio.ImageService = (*ImageService)(nil)

// ImageService is a mock implementation of folio.ImageService.
type ImageService struct {
	CreateImageFn           func(ctx context.Context, img *folio.Image) error
	FindImageByIDFn         func(ctx context.Context, id string) (*folio.Image, error)
	FindImagesFn            func(ctx context.Context, filter folio.ImageFilter) ([]*folio.Image, error)
	DeleteImagesByProjectFn func(ctx context.Context, projectID string) error
}

func (s *ImageService) CreateImage(ctx context.Context, img *folio.Image) error {
	return s.CreateImageFn(ctx, img)
}

func (s *ImageService) FindImageByID(ctx context.Context, id string) (*folio.Image, error) {
	return s.FindImageByIDFn(ctx, id)
}

func (s *ImageService) FindImages(ctx context.Context, filter folio.ImageFilter) ([]*folio.Image, error) {
	return s.FindImagesFn(ctx, filter)
}

func (s *ImageService) DeleteImagesByProject(ctx context.Context, projectID string) error {
	return s.DeleteImagesByProjectFn(ctx, projectID)
}
