// Package typescript reads the project table of the new site from its
// data/projects.ts module.
package typescript

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/folioworks/folio"
)

var (
	// projectStartRe matches the opening of a project literal:
	// { id: "...", title: "...",
	projectStartRe = regexp.MustCompile(`\{\s*id:\s*"([^"]+)",\s*title:\s*"([^"]+)",`)
	imageFieldRe   = regexp.MustCompile(`(?m)^\s*image:\s*"([^"]+)"`)
	caseStudyRe    = regexp.MustCompile(`caseStudy:\s*"([^"]+)"`)
)

var _ folio.ProjectSource = (*ProjectSource)(nil)

// ProjectSource implements folio.ProjectSource over a projects.ts file.
type ProjectSource struct {
	Path string
}

// NewProjectSource creates a ProjectSource reading path.
func NewProjectSource(path string) *ProjectSource {
	return &ProjectSource{Path: path}
}

// LoadProjects implements folio.ProjectSource.
func (s *ProjectSource) LoadProjects(ctx context.Context) ([]*folio.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}
	projects := ParseProjects(string(data))
	if len(projects) == 0 {
		return nil, folio.Errorf(folio.ENOTFOUND, "no projects found in %s", s.Path)
	}
	return projects, nil
}

// ParseProjects extracts every project literal from TypeScript source, in
// source order. Only id, title, the main image and a case-study link are
// read. The image field must start its own line, so homepageImage and
// similar fields are not mistaken for it.
func ParseProjects(src string) []*folio.Project {
	starts := projectStartRe.FindAllStringSubmatchIndex(src, -1)

	projects := make([]*folio.Project, 0, len(starts))
	for i, m := range starts {
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		body := src[m[1]:end]

		p := &folio.Project{
			ID:    src[m[2]:m[3]],
			Title: src[m[4]:m[5]],
		}
		if sub := imageFieldRe.FindStringSubmatch(body); sub != nil {
			p.Image = sub[1]
		}
		if sub := caseStudyRe.FindStringSubmatch(body); sub != nil {
			p.PageURL = sub[1]
		}
		projects = append(projects, p)
	}
	return projects
}
