// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

const notebookA = `{"cells": [
  {"cell_type": "markdown", "source": ["# Chapter 1: Basics"]},
  {"cell_type": "markdown", "source": ["## Lesson\n", "\n", "Prompts have structure."]},
  {"cell_type": "markdown", "source": ["### Examples\n", "skip me"]}
]}`

const notebookB = `{"cells": [
  {"cell_type": "markdown", "source": "# Chapter 2: Clarity"},
  {"cell_type": "markdown", "source": "## Lesson\nBe clear and direct."},
  {"cell_type": "markdown", "source": "## Exercises\nskip me"}
]}`

const notebookNoLesson = `{"cells": [{"cell_type": "markdown", "source": ["# Setup only"]}]}`

// --- test helpers ---

func writeNotebooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"01_Basics.ipynb":  notebookA,
		"02_Clarity.ipynb": notebookB,
		"03_Setup.ipynb":   notebookNoLesson,
		"04_Broken.ipynb":  "{not json",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// resetFlags restores every flag to its default so one invocation does not
// leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScrape_IndividualAndCatalog(t *testing.T) {
	src := writeNotebooks(t)
	outDir := filepath.Join(t.TempDir(), "out")
	catDir := filepath.Join(t.TempDir(), "catalog")

	out, err := execute(t, "",
		"scrape", "--from-dir", src, "--output-dir", outDir, "--mode", "individual",
		"--delay", "1ms", "--index", "--catalog-dir", catDir,
		"01_Basics.ipynb", "04_Broken.ipynb", "03_Setup.ipynb", "02_Clarity.ipynb", "99_Missing.ipynb",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary: 2 extracted, 1 without lesson, 2 failed (total: 5)")

	data, err := os.ReadFile(filepath.Join(outDir, "lesson_01_Basics.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Chapter 1: Basics\n\n*Source: 01_Basics.ipynb*\n\n## Lesson\n\nPrompts have structure.", string(data))

	data, err = os.ReadFile(filepath.Join(outDir, "lesson_02_Clarity.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Be clear and direct.")
	assert.NotContains(t, string(data), "skip me")

	_, err = os.Stat(filepath.Join(outDir, "lesson_03_Setup.md"))
	assert.True(t, os.IsNotExist(err))

	out, err = execute(t, "", "list", "--catalog-dir", catDir)
	require.NoError(t, err)
	assert.Contains(t, out, "01_Basics")
	assert.Contains(t, out, "Chapter 2: Clarity")

	out, err = execute(t, "", "search", "--catalog-dir", catDir, "--json", "direct")
	require.NoError(t, err)
	var found []types.Lesson
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "02_Clarity.ipynb", found[0].ID)

	out, err = execute(t, "", "show", "--catalog-dir", catDir, "--raw", "01_Basics")
	require.NoError(t, err)
	assert.Contains(t, out, "Prompts have structure.")

	_, err = execute(t, "", "show", "--catalog-dir", catDir, "99_Missing")
	assert.Error(t, err)
}

func TestScrape_PromptsForMode(t *testing.T) {
	src := writeNotebooks(t)
	outDir := t.TempDir()

	out, err := execute(t, "3\n2\n",
		"scrape", "--from-dir", src, "--output-dir", outDir, "--delay", "1ms",
		"01_Basics.ipynb", "02_Clarity.ipynb",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Please enter 1 or 2")

	data, err := os.ReadFile(filepath.Join(outDir, "all_lessons.md"))
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, "# Anthropic Prompt Engineering Tutorial - All Lessons\n\n"))
	assert.Less(t, strings.Index(s, "## Chapter 1: Basics"), strings.Index(s, "## Chapter 2: Clarity"))
	assert.Equal(t, 2, strings.Count(s, "\n---\n"))
}

func TestScrape_NoLessons(t *testing.T) {
	src := writeNotebooks(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "",
		"scrape", "--from-dir", src, "--output-dir", outDir, "--mode", "combined", "--delay", "1ms",
		"03_Setup.ipynb", "04_Broken.ipynb",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "No lessons found!")

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err), "nothing is written")
}

func TestScrape_InvalidMode(t *testing.T) {
	_, err := execute(t, "", "scrape", "--mode", "both", "--from-dir", t.TempDir())
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "lesson-scraper dev\n", out)
}
