// Package fs provides file-based storage for downloaded assets and
// scraped case-study pages.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/folioworks/folio"
)

// FormatPage formats a page as markdown with YAML front matter. Case-study
// fields that were found are included in the front matter.
func FormatPage(page *folio.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "project", page.ProjectID)
	writeField(&b, "source", page.SourceURL)
	writeField(&b, "title", page.Title)
	if cs := page.CaseStudy; cs != nil {
		writeField(&b, "subtitle", cs.Subtitle)
		writeField(&b, "description", cs.Description)
		writeField(&b, "timeline", cs.Timeline)
		writeField(&b, "role", cs.Role)
		writeField(&b, "research", cs.ResearchMethod)
		writeList(&b, "goals", cs.Goals)
		writeList(&b, "findings", cs.Findings)
	}
	writeField(&b, "crawled", page.FetchedAt.Format("2006-01-02"))
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(yamlScalar(value))
	b.WriteByte('\n')
}

func writeList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(key)
	b.WriteString(":\n")
	for _, v := range values {
		b.WriteString("  - ")
		b.WriteString(yamlScalar(v))
		b.WriteByte('\n')
	}
}

// yamlScalar quotes s only when a plain YAML scalar would misread it:
// a mapping or comment marker inside, a trailing colon, a leading
// indicator character, surrounding space or a line break. URLs stay plain.
func yamlScalar(s string) string {
	switch {
	case s == "":
		return `""`
	case strings.Contains(s, ": "), strings.Contains(s, " #"), strings.HasSuffix(s, ":"),
		strings.ContainsAny(s, "\n\r"), strings.TrimSpace(s) != s,
		strings.ContainsRune("-?:,[]{}#&*!|>'\"%@`", rune(s[0])):
		return strconv.Quote(s)
	}
	return s
}

// Ensure Writer implements folio.PageWriter at compile time.
var _ folio.PageWriter = (*Writer)(nil)

// Writer writes pages as markdown files to a directory, one file per
// project named "<project-id>.md".
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes a page to disk as a markdown file.
func (w *Writer) WritePage(ctx context.Context, page *folio.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	name, err := cleanRelPath(page.ProjectID + ".md")
	if err != nil {
		return err
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return folio.Errorf(folio.EINVALID, "invalid project ID: %q", page.ProjectID)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.baseDir, name), []byte(FormatPage(page)), 0644)
}
