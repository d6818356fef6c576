// This file implements the in-memory index over the loaded projects:
// slug lookup, listing in catalog order, neighbour resolution and
// category/tag filtering. Every accessor returns copies.

package catalog

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// ErrInvalidCatalog is returned when project data fails validation or
// contains duplicate ids or slugs.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Reference fields reported by DanglingRefs.
const (
	FieldNext = "nextProjectSlug"
	FieldPrev = "prevProjectSlug"
)

// DanglingRef is a prev/next slug that does not name a project.
type DanglingRef struct {
	Slug   string `json:"slug"`
	Field  string `json:"field"`
	Target string `json:"target"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s.%s -> %q", d.Slug, d.Field, d.Target)
}

// Catalog is an immutable, ordered set of projects. It is safe for
// concurrent use.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
}

// New validates projects and builds a Catalog that keeps their order.
// The input slice is copied.
func New(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		bySlug:   make(map[string]int, len(projects)),
	}
	ids := make(map[int]string, len(projects))

	for i, p := range projects {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: project #%d (%q): %s", ErrInvalidCatalog, i, p.Slug, describe(err))
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidCatalog, p.Slug)
		}
		if other, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("%w: id %d used by %q and %q", ErrInvalidCatalog, p.ID, other, p.Slug)
		}
		ids[p.ID] = p.Slug
		c.bySlug[p.Slug] = len(c.projects)
		c.projects = append(c.projects, p.clone())
	}
	return c, nil
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// GetBySlug returns the project whose slug equals slug exactly. The
// returned value is a copy.
func (c *Catalog) GetBySlug(slug string) (Project, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, false
	}
	return c.projects[i].clone(), true
}

// Slugs returns every slug in catalog order.
func (c *Catalog) Slugs() []string {
	out := make([]string, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Slug
	}
	return out
}

// Summaries returns the card projection of every project in catalog order.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Summary()
	}
	return out
}

// Neighbors resolves the prev/next references of the project named by
// slug. Either result is nil when the reference is empty or dangling, or
// when slug itself is unknown.
func (c *Catalog) Neighbors(slug string) (prev, next *Summary) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, nil
	}
	p := c.projects[i]
	return c.summaryOf(p.PrevProjectSlug), c.summaryOf(p.NextProjectSlug)
}

func (c *Catalog) summaryOf(slug string) *Summary {
	if slug == "" {
		return nil
	}
	i, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	s := c.projects[i].Summary()
	return &s
}

// DanglingRefs lists every non-empty prev/next slug that names no project,
// in catalog order.
func (c *Catalog) DanglingRefs() []DanglingRef {
	var out []DanglingRef
	for _, p := range c.projects {
		if t := p.PrevProjectSlug; t != "" {
			if _, ok := c.bySlug[t]; !ok {
				out = append(out, DanglingRef{Slug: p.Slug, Field: FieldPrev, Target: t})
			}
		}
		if t := p.NextProjectSlug; t != "" {
			if _, ok := c.bySlug[t]; !ok {
				out = append(out, DanglingRef{Slug: p.Slug, Field: FieldNext, Target: t})
			}
		}
	}
	return out
}

// Filter returns the summaries whose category equals category and whose tags
// contain tag, both compared under Unicode case folding. An empty argument
// matches everything. The result is never nil.
func (c *Catalog) Filter(category, tag string) []Summary {
	fold := cases.Fold()
	wantCat := fold.String(category)
	wantTag := fold.String(tag)

	out := make([]Summary, 0, len(c.projects))
	for _, p := range c.projects {
		if category != "" && fold.String(p.Category) != wantCat {
			continue
		}
		if tag != "" && !hasTag(fold, p.Tags, wantTag) {
			continue
		}
		out = append(out, p.Summary())
	}
	return out
}

func hasTag(fold cases.Caser, tags []string, want string) bool {
	for _, t := range tags {
		if fold.String(t) == want {
			return true
		}
	}
	return false
}
