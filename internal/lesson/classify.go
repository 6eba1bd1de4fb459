// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lesson

import (
	"regexp"
	"strings"
)

// lineKind classifies a single markdown line for section detection.
type lineKind int

const (
	linePlain    lineKind = iota
	lineLesson            // "## Lesson"
	lineSection           // any other level-2 heading
	lineExamples          // "### Example" or "### Examples"
)

func (k lineKind) String() string {
	switch k {
	case lineLesson:
		return "lesson"
	case lineSection:
		return "section"
	case lineExamples:
		return "examples"
	default:
		return "plain"
	}
}

// space matches any Unicode whitespace rune. Go's \s is ASCII-only, which
// would miss headings padded with NBSP or vertical tab.
const space = `[\t\n\v\f\r \x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	lessonHeading   = regexp.MustCompile(`(?i)^##` + space + `+Lesson` + space + `*$`)
	examplesHeading = regexp.MustCompile(`(?i)^###` + space + `+Examples?` + space + `*$`)

	// sectionHeading is applied per line, so a bare "##" followed by a line
	// break does not count as a heading.
	sectionHeading = regexp.MustCompile(`^##` + space + `+`)
)

// classifyLine reports which heading, if any, line is. Lines are matched
// individually, so a heading may appear anywhere within a cell.
func classifyLine(line string) lineKind {
	switch {
	case lessonHeading.MatchString(line):
		return lineLesson
	case sectionHeading.MatchString(line):
		return lineSection
	case examplesHeading.MatchString(line):
		return lineExamples
	default:
		return linePlain
	}
}

// cellShape summarizes the headings found in one markdown cell.
type cellShape struct {
	content string
	lines   []string

	// lessonAt is the index of the first "## Lesson" line, -1 when absent.
	lessonAt int

	// hasSection is set by any level-2 heading, "## Lesson" included.
	hasSection  bool
	hasExamples bool
}

func classifyCell(content string) cellShape {
	shape := cellShape{
		content:  content,
		lines:    strings.Split(content, "\n"),
		lessonAt: -1,
	}
	for i, line := range shape.lines {
		switch classifyLine(line) {
		case lineLesson:
			if shape.lessonAt < 0 {
				shape.lessonAt = i
			}
			shape.hasSection = true
		case lineSection:
			shape.hasSection = true
		case lineExamples:
			shape.hasExamples = true
		}
	}
	return shape
}
