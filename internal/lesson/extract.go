// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lesson extracts the "Lesson" section from a notebook.
//
// Extraction is a single forward pass over the markdown cells. A cell
// containing a "## Lesson" line starts collection with the lines after
// that heading; later cells are collected whole until one contains
// another level-2 heading or an "### Examples" heading.
package lesson

import (
	"regexp"
	"strings"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// state is the position of the extractor relative to the lesson section.
type state int

const (
	seeking state = iota
	collecting
	done
)

func (s state) String() string {
	switch s {
	case seeking:
		return "seeking"
	case collecting:
		return "collecting"
	default:
		return "done"
	}
}

// step is the transition function of the extractor. It returns the next
// state and the text to append to the body for this cell.
//
// The cell that opens the lesson is not checked against the stop rules,
// even when it contains a later level-2 heading of its own.
func step(st state, cell cellShape) (state, []string) {
	switch st {
	case seeking:
		if cell.lessonAt < 0 {
			return seeking, nil
		}
		return collecting, cell.lines[cell.lessonAt+1:]
	case collecting:
		if cell.hasSection || cell.hasExamples {
			return done, nil
		}
		return collecting, []string{cell.content}
	default:
		return done, nil
	}
}

// Body returns the normalized lesson text of nb. The boolean is false when
// the notebook has no lesson section or the section is empty.
func Body(nb *types.Notebook) (string, bool) {
	if nb == nil {
		return "", false
	}

	st := seeking
	var pieces []string
	for _, cell := range nb.Cells {
		if st == done {
			break
		}
		if !cell.IsMarkdown() || len(cell.Source) == 0 {
			continue
		}
		var keep []string
		st, keep = step(st, classifyCell(cell.Text()))
		pieces = append(pieces, keep...)
	}

	if len(pieces) == 0 {
		return "", false
	}
	body := Normalize(strings.Join(pieces, "\n"))
	if body == "" {
		return "", false
	}
	return body, true
}

// blankRun matches three or more newlines, allowing whitespace-only lines
// between them.
var blankRun = regexp.MustCompile(`\n` + space + `*\n` + space + `*\n`)

// Normalize collapses runs of blank lines to a single blank line and trims
// surrounding whitespace.
func Normalize(text string) string {
	return strings.TrimSpace(blankRun.ReplaceAllString(text, "\n\n"))
}

// Extract runs title lookup and body extraction on nb. The boolean is
// false when there is no lesson to report.
func Extract(id string, nb *types.Notebook) (types.Lesson, bool) {
	body, ok := Body(nb)
	if !ok {
		return types.Lesson{}, false
	}
	return types.Lesson{
		ID:    id,
		Title: Title(nb),
		Body:  body,
	}, true
}
