// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape runs the fetch-and-extract batch over a list of notebooks.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/lesson-scraper/internal/fetch"
	"github.com/pdiddy/lesson-scraper/internal/lesson"
	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// DefaultDelay is the pause between consecutive fetches.
const DefaultDelay = 500 * time.Millisecond

// DefaultNotebooks lists the tutorial notebooks in chapter order. The
// appendix notebooks are not reliably present upstream and are left out.
var DefaultNotebooks = []string{
	"00_Tutorial_How-To.ipynb",
	"01_Basic_Prompt_Structure.ipynb",
	"02_Being_Clear_and_Direct.ipynb",
	"03_Assigning_Roles_Role_Prompting.ipynb",
	"04_Separating_Data_and_Instructions.ipynb",
	"05_Formatting_Output_and_Speaking_for_Claude.ipynb",
	"06_Precognition_Thinking_Step_by_Step.ipynb",
	"07_Using_Examples_Few-Shot_Prompting.ipynb",
	"08_Avoiding_Hallucinations.ipynb",
	"09_Complex_Prompts_from_Scratch.ipynb",
}

// Locator is implemented by fetchers that can report where an identifier
// is fetched from.
type Locator interface {
	URL(id string) string
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Extracted int
	Missing   int
	Failed    int

	// Lessons holds the extracted lessons in input order.
	Lessons []types.Lesson
}

// Total returns the number of identifiers processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Missing + r.Failed
}

// HasFailures reports whether any notebook failed to fetch or parse.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Empty reports whether no lesson was extracted.
func (r BatchResult) Empty() bool {
	return len(r.Lessons) == 0
}

// ScrapeNotebook fetches one notebook and extracts its lesson. The boolean
// is false, with a nil error, when the notebook has no lesson section.
func ScrapeNotebook(ctx context.Context, f fetch.Fetcher, id string) (types.Lesson, bool, error) {
	nb, err := f.Fetch(ctx, id)
	if err != nil {
		return types.Lesson{}, false, err
	}
	l, ok := lesson.Extract(id, nb)
	if !ok {
		return types.Lesson{}, false, nil
	}
	if loc, isLocator := f.(Locator); isLocator {
		l.SourceURL = loc.URL(id)
	}
	l.ExtractedAt = time.Now().UTC()
	return l, true, nil
}

// ScrapeBatch processes ids in order, printing per-notebook status to w.
// Fetch and parse failures are reported and skipped; the batch always runs
// to the end. A repeated id is processed once, at its first position. A
// delay separates consecutive fetches.
func ScrapeBatch(ctx context.Context, f fetch.Fetcher, ids []string, delay time.Duration, w io.Writer) BatchResult {
	var result BatchResult
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			fmt.Fprintf(w, "skipping: %s (duplicate)\n", id)
			continue
		}
		seen[id] = true

		if len(seen) > 1 && delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}

		fmt.Fprintf(w, "fetching: %s\n", id)
		l, ok, err := ScrapeNotebook(ctx, f, id)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%s)\n", id, describe(err))
			result.Failed++
			continue
		}
		if !ok {
			fmt.Fprintf(w, "warning: no lesson content found in %s\n", id)
			result.Missing++
			continue
		}
		fmt.Fprintf(w, "extracted: %s\n", id)
		result.Extracted++
		result.Lessons = append(result.Lessons, l)
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d without lesson, %d failed (total: %d)\n",
		result.Extracted, result.Missing, result.Failed, result.Total())
	return result
}

// describe labels err by failure class for the status line.
func describe(err error) string {
	var fe *fetch.FetchError
	var pe *fetch.ParseError
	switch {
	case errors.As(err, &fe):
		return fmt.Sprintf("fetch error: %v", fe.Err)
	case errors.As(err, &pe):
		return fmt.Sprintf("parse error: %v", pe.Err)
	default:
		return err.Error()
	}
}
