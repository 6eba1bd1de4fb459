// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// memSink stores units in memory and fails for names listed in fail.
type memSink struct {
	files map[string]string
	order []string
	fail  map[string]bool
}

func newMemSink(fail ...string) *memSink {
	s := &memSink{files: map[string]string{}, fail: map[string]bool{}}
	for _, name := range fail {
		s.fail[name] = true
	}
	return s
}

func (s *memSink) Write(name string, data []byte) error {
	s.order = append(s.order, name)
	if s.fail[name] {
		return errors.New("disk full")
	}
	s.files[name] = string(data)
	return nil
}

var sampleLessons = []types.Lesson{
	{ID: "01_Basic_Prompt_Structure.ipynb", Title: "Chapter 1: Basic Prompt Structure", Body: "Anthropic offers two APIs."},
	{ID: "02_Being_Clear_and_Direct.ipynb", Title: "Chapter 2: Being Clear and Direct", Body: "Claude responds best to clear instructions."},
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "lesson_01_Basic_Prompt_Structure.md", FileName("01_Basic_Prompt_Structure.ipynb", types.FormatMarkdown))
	assert.Equal(t, "lesson_01_Basic_Prompt_Structure.html", FileName("01_Basic_Prompt_Structure.ipynb", types.FormatHTML))
	assert.Equal(t, "lesson_notes.md", FileName("notes", types.FormatMarkdown))
	assert.Equal(t, "all_lessons.md", CombinedFileName(types.FormatMarkdown))
	assert.Equal(t, "all_lessons.html", CombinedFileName(types.FormatHTML))
}

func TestRenderLesson(t *testing.T) {
	got := RenderLesson(sampleLessons[0])
	want := "# Chapter 1: Basic Prompt Structure\n\n" +
		"*Source: 01_Basic_Prompt_Structure.ipynb*\n\n" +
		"## Lesson\n\n" +
		"Anthropic offers two APIs."
	assert.Equal(t, want, got)
}

func TestRenderCombined(t *testing.T) {
	got := RenderCombined("", sampleLessons)
	want := "# Anthropic Prompt Engineering Tutorial - All Lessons\n\n" +
		"## Chapter 1: Basic Prompt Structure\n\n" +
		"*Source: 01_Basic_Prompt_Structure.ipynb*\n\n" +
		"Anthropic offers two APIs.\n\n---\n\n" +
		"## Chapter 2: Being Clear and Direct\n\n" +
		"*Source: 02_Being_Clear_and_Direct.ipynb*\n\n" +
		"Claude responds best to clear instructions.\n\n---\n\n"
	assert.Equal(t, want, got)

	assert.True(t, strings.HasPrefix(RenderCombined("My Notes", nil), "# My Notes\n\n"))
}

func TestToHTML(t *testing.T) {
	page, err := ToHTML("A <b> title", RenderLesson(sampleLessons[0]))
	require.NoError(t, err)

	s := string(page)
	assert.Contains(t, s, "<title>A &lt;b&gt; title</title>")
	assert.Contains(t, s, "<h1>Chapter 1: Basic Prompt Structure</h1>")
	assert.Contains(t, s, "<h2>Lesson</h2>")
	assert.Contains(t, s, "<em>Source: 01_Basic_Prompt_Structure.ipynb</em>")
}

func TestWrite_Individual(t *testing.T) {
	sink := newMemSink()
	var buf bytes.Buffer

	result, err := Write(sink, sampleLessons, Options{Mode: types.ModeIndividual}, &buf)
	require.NoError(t, err)
	assert.False(t, result.HasFailures())
	assert.Equal(t, []string{
		"lesson_01_Basic_Prompt_Structure.md",
		"lesson_02_Being_Clear_and_Direct.md",
	}, result.Written)
	assert.Equal(t, RenderLesson(sampleLessons[1]), sink.files["lesson_02_Being_Clear_and_Direct.md"])
	assert.Contains(t, buf.String(), "saved: lesson_01_Basic_Prompt_Structure.md")
}

func TestWrite_IndividualContinuesAfterFailure(t *testing.T) {
	sink := newMemSink("lesson_01_Basic_Prompt_Structure.md")
	var buf bytes.Buffer

	result, err := Write(sink, sampleLessons, Options{Mode: types.ModeIndividual}, &buf)
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
	require.Len(t, result.Errors, 1)

	var we *WriteError
	require.True(t, errors.As(result.Errors[0], &we))
	assert.Equal(t, "lesson_01_Basic_Prompt_Structure.md", we.Name)

	assert.Equal(t, []string{"lesson_02_Being_Clear_and_Direct.md"}, result.Written)
	assert.Len(t, sink.order, 2)
	assert.Contains(t, buf.String(), "failed:  lesson_01_Basic_Prompt_Structure.md")
}

func TestWrite_Combined(t *testing.T) {
	sink := newMemSink()
	var buf bytes.Buffer

	result, err := Write(sink, sampleLessons, Options{Mode: types.ModeCombined, CombinedTitle: "Study Guide"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"all_lessons.md"}, result.Written)
	assert.Equal(t, RenderCombined("Study Guide", sampleLessons), sink.files["all_lessons.md"])
}

func TestWrite_CombinedHTML(t *testing.T) {
	sink := newMemSink()
	var buf bytes.Buffer

	_, err := Write(sink, sampleLessons, Options{Mode: types.ModeCombined, Format: types.FormatHTML}, &buf)
	require.NoError(t, err)
	page := sink.files["all_lessons.html"]
	assert.Contains(t, page, "<h1>Anthropic Prompt Engineering Tutorial - All Lessons</h1>")
	assert.Equal(t, 2, strings.Count(page, "<hr>")+strings.Count(page, "<hr />"))
}

func TestWrite_InvalidOptions(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(newMemSink(), sampleLessons, Options{Mode: "both"}, &buf)
	assert.Error(t, err)

	_, err = Write(newMemSink(), sampleLessons, Options{Mode: types.ModeCombined, Format: "pdf"}, &buf)
	assert.Error(t, err)
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := DirSink{Dir: dir}

	require.NoError(t, sink.Write("lesson_a.md", []byte("hello")))
	data, err := os.ReadFile(sink.Path("lesson_a.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, sink.Write("lesson_a.md", []byte("replaced")))
	data, err = os.ReadFile(sink.Path("lesson_a.md"))
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestDirSink_WriteError(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := DirSink{Dir: filepath.Join(blocker, "sub")}.Write("a.md", []byte("x"))
	require.Error(t, err)
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, "a.md", we.Name)
}
