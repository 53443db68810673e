package folio

// ExtractResult is the readable part of a case-study page.
type ExtractResult struct {
	Title string

	// Description is the page summary from its metadata, if it has one.
	Description string

	// ContentHTML is the article body with navigation, footers and other
	// site chrome stripped.
	ContentHTML string
}

// Extractor pulls the article out of a full page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter turns extracted article HTML into the Markdown body of a
// page file.
type Converter interface {
	Convert(html string) (string, error)
}
