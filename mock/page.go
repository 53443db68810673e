package mock

import (
	"context"

	"github.com/folioworks/folio"
)

var _ folio.PageService = (*PageService)(nil)

// PageService is a mock implementation of folio.PageService.
type PageService struct {
	CreatePageFn        func(ctx context.Context, page *folio.Page) error
	FindPageByProjectFn func(ctx context.Context, projectID string) (*folio.Page, error)
	FindPagesFn         func(ctx context.Context) ([]*folio.Page, error)
}

func (s *PageService) CreatePage(ctx context.Context, page *folio.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByProject(ctx context.Context, projectID string) (*folio.Page, error) {
	return s.FindPageByProjectFn(ctx, projectID)
}

func (s *PageService) FindPages(ctx context.Context) ([]*folio.Page, error) {
	return s.FindPagesFn(ctx)
}

var _ folio.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of folio.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *folio.Page) error
}

func (w *PageWriter) WritePage(ctx context.Context, page *folio.Page) error {
	return w.WritePageFn(ctx, page)
}
