package project

import (
	"hash/fnv"
	"strings"
)

// Defaults applied when a source row is missing a field
const (
	DefaultTitle       = "Unknown Project"
	DefaultCategory    = "Uncategorized"
	DefaultSubcategory = "General"
)

// Coordinates are the optional 3D embedding position used by visualization
// layers. The matching core never reads them.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Record is one project row from the source table. IDs are assigned at load
// time (row index) and are stable for the lifetime of a corpus.
type Record struct {
	ID                  int         `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	DetailedDescription string      `json:"detailed_description,omitempty"`
	AISummary           string      `json:"ai_summary,omitempty"`
	Category            string      `json:"category"`
	Subcategory         string      `json:"subcategory"`
	ProjectURL          string      `json:"project_url,omitempty"`
	GitHubURL           string      `json:"github_url,omitempty"`
	DemoURL             string      `json:"demo_url,omitempty"`
	Stars               int         `json:"github_stars,omitempty"`
	Downloads           int         `json:"downloads,omitempty"`
	License             string      `json:"license,omitempty"`
	Coordinates         Coordinates `json:"coordinates"`
}

// ApplyDefaults resolves missing fields once, at load time, so the rest of
// the system never deals with blank titles or categories.
func (r *Record) ApplyDefaults() {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = DefaultTitle
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	if strings.TrimSpace(r.Subcategory) == "" {
		r.Subcategory = DefaultSubcategory
	}
	if r.Coordinates == (Coordinates{}) {
		r.Coordinates = SynthesizeCoordinates(r.Title)
	}
}

// CombinedText concatenates every free-text field of the record. This feeds
// both the similarity corpus and the keyword annotators.
func (r *Record) CombinedText() string {
	parts := make([]string, 0, 6)
	for _, s := range []string{
		r.Title,
		r.Description,
		r.DetailedDescription,
		r.AISummary,
		r.Category,
		r.Subcategory,
	} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// SynthesizeCoordinates derives stable pseudo-random coordinates from a seed
// string. Rows without x/y/z columns still get a plottable position, and the
// same title always maps to the same point.
func SynthesizeCoordinates(seed string) Coordinates {
	h := fnv.New64a()
	h.Write([]byte(seed))
	v := h.Sum64()

	// Spread three 21-bit slices into [-10, 10)
	scale := func(bits uint64) float64 {
		return float64(bits&0x1FFFFF)/float64(0x1FFFFF)*20 - 10
	}
	return Coordinates{
		X: scale(v),
		Y: scale(v >> 21),
		Z: scale(v >> 42),
	}
}
