// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UnknownTitle is the title reported when a notebook has no top-level
// heading in its first cells.
const UnknownTitle = "Unknown"

// Lesson is the lesson section extracted from one notebook.
type Lesson struct {
	// ID is the notebook identifier the lesson came from
	// (e.g. "01_Basic_Prompt_Structure.ipynb").
	ID string `json:"id" yaml:"id"`

	// Title is the notebook's top-level heading, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// Body is the normalized lesson text.
	Body string `json:"body" yaml:"body"`

	// SourceURL is the URL the notebook was fetched from, when known.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// ExtractedAt is when the lesson was extracted. Zero when not recorded.
	ExtractedAt time.Time `json:"extracted_at,omitempty" yaml:"extracted_at,omitempty"`
}

// OutputMode selects how extracted lessons are written.
type OutputMode string

const (
	// ModeIndividual writes one file per lesson.
	ModeIndividual OutputMode = "individual"
	// ModeCombined writes every lesson into a single file.
	ModeCombined OutputMode = "combined"
)

// Valid reports whether m is a known output mode.
func (m OutputMode) Valid() bool {
	return m == ModeIndividual || m == ModeCombined
}

// OutputFormat selects the file format of written lessons.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	return f == FormatMarkdown || f == FormatHTML
}
