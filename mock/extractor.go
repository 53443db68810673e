package mock

import "github.com/folioworks/folio"

var _ folio.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of folio.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*folio.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*folio.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ folio.Converter = (*Converter)(nil)

// Converter is a mock implementation of folio.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
