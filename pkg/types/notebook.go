// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellKind is the nbformat cell_type of a notebook cell.
type CellKind string

const (
	CellMarkdown CellKind = "markdown"
	CellCode     CellKind = "code"
	CellRaw      CellKind = "raw"
)

// Notebook is a parsed notebook document. Only the cell sequence matters
// for lesson extraction; the remaining nbformat fields are kept opaque.
type Notebook struct {
	Cells    []Cell          `json:"cells"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	NBFormat int             `json:"nbformat,omitempty"`
}

// Cell is one unit of a notebook's content sequence.
type Cell struct {
	Kind   CellKind `json:"cell_type"`
	Source Source   `json:"source"`
}

// Text returns the cell's source fragments concatenated in order.
func (c Cell) Text() string {
	return strings.Join(c.Source, "")
}

// IsMarkdown reports whether the cell is a markdown cell.
func (c Cell) IsMarkdown() bool {
	return c.Kind == CellMarkdown
}

// Source holds the ordered text fragments of a cell. nbformat writes it
// either as a list of strings or as a single string; both decode here.
type Source []string

// UnmarshalJSON accepts a JSON string, a list of strings, or null.
func (s *Source) UnmarshalJSON(data []byte) error {
	var fragments []string
	if err := json.Unmarshal(data, &fragments); err == nil {
		*s = fragments
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = Source{single}
	return nil
}
