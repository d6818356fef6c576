// Package catalog serves the read-only set of portfolio case studies.
//
// Projects are loaded once (from the embedded YAML or an override file),
// validated, and never mutated afterwards. Lookups are exact-match on slug.
// The prev/next slugs on a project are weak references: they are resolved
// at lookup time and a reference that does not resolve simply means "no
// neighbour" in that direction.
package catalog

// Overview is the problem/solution summary of a case study.
type Overview struct {
	Problem      string   `yaml:"problem" json:"problem" validate:"required"`
	Solution     string   `yaml:"solution" json:"solution" validate:"required"`
	Role         string   `yaml:"role" json:"role" validate:"required"`
	Deliverables []string `yaml:"deliverables" json:"deliverables" validate:"dive,required"`
	Duration     string   `yaml:"duration,omitempty" json:"duration,omitempty"`
	Client       string   `yaml:"client,omitempty" json:"client,omitempty"`
}

// ProcessStep is one stage of the design process with its images.
type ProcessStep struct {
	Title       string   `yaml:"title" json:"title" validate:"required"`
	Description string   `yaml:"description" json:"description" validate:"required"`
	Images      []string `yaml:"images" json:"images" validate:"dive,required"`
}

// Metric is a labelled outcome figure such as "Brand Recall: 87%".
type Metric struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Value string `yaml:"value" json:"value" validate:"required"`
}

// Outcome describes the result of a project.
type Outcome struct {
	Description string   `yaml:"description" json:"description" validate:"required"`
	Metrics     []Metric `yaml:"metrics,omitempty" json:"metrics,omitempty" validate:"dive"`
}

// Project is a full case study.
type Project struct {
	ID          int      `yaml:"id" json:"id" validate:"gt=0"`
	Slug        string   `yaml:"slug" json:"slug" validate:"required,slug"`
	Title       string   `yaml:"title" json:"title" validate:"required"`
	Category    string   `yaml:"category" json:"category" validate:"required"`
	Description string   `yaml:"description" json:"description" validate:"required"`
	Tags        []string `yaml:"tags" json:"tags" validate:"dive,required"`
	Year        string   `yaml:"year" json:"year" validate:"required"`
	Color       string   `yaml:"color" json:"color" validate:"required"`

	HeroImage      string        `yaml:"heroImage" json:"heroImage" validate:"required"`
	ThumbnailImage string        `yaml:"thumbnailImage" json:"thumbnailImage" validate:"required"`
	Overview       Overview      `yaml:"overview" json:"overview"`
	Process        []ProcessStep `yaml:"process" json:"process" validate:"dive"`
	Gallery        []string      `yaml:"gallery" json:"gallery" validate:"dive,required"`
	Outcome        *Outcome      `yaml:"outcome,omitempty" json:"outcome,omitempty"`

	NextProjectSlug string `yaml:"nextProjectSlug,omitempty" json:"nextProjectSlug,omitempty" validate:"omitempty,slug"`
	PrevProjectSlug string `yaml:"prevProjectSlug,omitempty" json:"prevProjectSlug,omitempty" validate:"omitempty,slug"`
}

// Summary is the card-sized projection of a Project.
type Summary struct {
	ID             int      `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	Year           string   `json:"year"`
	Color          string   `json:"color"`
	ThumbnailImage string   `json:"thumbnailImage"`
}

// Summary projects p to its card fields.
func (p Project) Summary() Summary {
	return Summary{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Title,
		Category:       p.Category,
		Description:    p.Description,
		Tags:           cloneStrings(p.Tags),
		Year:           p.Year,
		Color:          p.Color,
		ThumbnailImage: p.ThumbnailImage,
	}
}

// clone returns a copy of p that shares no slices with it.
func (p Project) clone() Project {
	out := p
	out.Tags = cloneStrings(p.Tags)
	out.Gallery = cloneStrings(p.Gallery)
	out.Overview.Deliverables = cloneStrings(p.Overview.Deliverables)
	if p.Process != nil {
		out.Process = make([]ProcessStep, len(p.Process))
		for i, s := range p.Process {
			s.Images = cloneStrings(s.Images)
			out.Process[i] = s
		}
	}
	if p.Outcome != nil {
		o := *p.Outcome
		if o.Metrics != nil {
			o.Metrics = append([]Metric(nil), o.Metrics...)
		}
		out.Outcome = &o
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
