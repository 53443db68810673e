package folio

// ImageMatch holds the candidate images found for a single label,
// best candidate first.
type ImageMatch struct {
	Label  string
	Images []string
}

// Primary returns the best candidate, or an empty string if nothing matched.
func (m *ImageMatch) Primary() string {
	if m == nil || len(m.Images) == 0 {
		return ""
	}
	return m.Images[0]
}

// ImageMatcher locates images in a page that are associated with labels.
type ImageMatcher interface {
	// MatchImages parses html once and returns one ImageMatch per label,
	// in label order. A label without candidates yields an empty match,
	// not an error. Empty labels are rejected with EINVALID.
	MatchImages(html string, labels []string) ([]*ImageMatch, error)
}
