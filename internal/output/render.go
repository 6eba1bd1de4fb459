// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

const (
	notebookExt   = ".ipynb"
	lessonPrefix  = "lesson_"
	combinedStem  = "all_lessons"
	sectionLabel  = "## Lesson"
	lessonDivider = "---"
)

// DefaultCombinedTitle is the top-level heading of the combined file.
const DefaultCombinedTitle = "Anthropic Prompt Engineering Tutorial - All Lessons"

// Stem returns the notebook identifier without its .ipynb suffix.
func Stem(id string) string {
	return strings.TrimSuffix(id, notebookExt)
}

// FileName returns the individual output file name for a lesson.
func FileName(id string, format types.OutputFormat) string {
	return lessonPrefix + Stem(id) + fileExt(format)
}

// CombinedFileName returns the combined output file name.
func CombinedFileName(format types.OutputFormat) string {
	return combinedStem + fileExt(format)
}

func fileExt(format types.OutputFormat) string {
	if format == types.FormatHTML {
		return ".html"
	}
	return ".md"
}

// RenderLesson returns the markdown document for one lesson: title,
// source line, the lesson label and the body.
func RenderLesson(l types.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Title)
	fmt.Fprintf(&b, "*Source: %s*\n\n", l.ID)
	fmt.Fprintf(&b, "%s\n\n", sectionLabel)
	b.WriteString(l.Body)
	return b.String()
}

// RenderCombined returns one markdown document holding every lesson in
// order, each under its own heading and followed by a horizontal rule.
func RenderCombined(title string, lessons []types.Lesson) string {
	if title == "" {
		title = DefaultCombinedTitle
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, l := range lessons {
		fmt.Fprintf(&b, "## %s\n\n", l.Title)
		fmt.Fprintf(&b, "*Source: %s*\n\n", l.ID)
		b.WriteString(l.Body)
		fmt.Fprintf(&b, "\n\n%s\n\n", lessonDivider)
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ToHTML renders a markdown document as a standalone HTML page.
func ToHTML(title, doc string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(doc), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(title))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// encode turns a rendered markdown document into file contents.
func encode(format types.OutputFormat, title, doc string) ([]byte, error) {
	if format == types.FormatHTML {
		return ToHTML(title, doc)
	}
	return []byte(doc), nil
}
