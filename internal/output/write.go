// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/lesson-scraper/pkg/types"
)

// Options controls how lessons are written.
type Options struct {
	Mode          types.OutputMode
	Format        types.OutputFormat
	CombinedTitle string
}

// WriteResult holds the outcome of writing lessons.
type WriteResult struct {
	// Written lists the names of the units stored successfully.
	Written []string

	// Errors holds one *WriteError per failed unit.
	Errors []error
}

// HasFailures reports whether any unit failed to write.
func (r WriteResult) HasFailures() bool {
	return len(r.Errors) > 0
}

// Write stores lessons in sink according to opts, printing per-file status
// to w. A failed unit is reported and does not stop the remaining units;
// units already written are left in place.
func Write(sink Sink, lessons []types.Lesson, opts Options, w io.Writer) (WriteResult, error) {
	format := opts.Format
	if format == "" {
		format = types.FormatMarkdown
	}
	if !format.Valid() {
		return WriteResult{}, fmt.Errorf("unknown output format %q", opts.Format)
	}

	switch opts.Mode {
	case types.ModeIndividual:
		return WriteIndividual(sink, lessons, format, w), nil
	case types.ModeCombined:
		return WriteCombined(sink, lessons, opts.CombinedTitle, format, w), nil
	default:
		return WriteResult{}, fmt.Errorf("unknown output mode %q", opts.Mode)
	}
}

// WriteIndividual writes one unit per lesson named after its notebook.
func WriteIndividual(sink Sink, lessons []types.Lesson, format types.OutputFormat, w io.Writer) WriteResult {
	var result WriteResult
	for _, l := range lessons {
		name := FileName(l.ID, format)
		result.record(sink, name, format, l.Title, RenderLesson(l), w)
	}
	return result
}

// WriteCombined writes every lesson into a single unit.
func WriteCombined(sink Sink, lessons []types.Lesson, title string, format types.OutputFormat, w io.Writer) WriteResult {
	if title == "" {
		title = DefaultCombinedTitle
	}
	var result WriteResult
	result.record(sink, CombinedFileName(format), format, title, RenderCombined(title, lessons), w)
	return result
}

func (r *WriteResult) record(sink Sink, name string, format types.OutputFormat, title, doc string, w io.Writer) {
	data, err := encode(format, title, doc)
	if err == nil {
		err = sink.Write(name, data)
	}
	if err != nil {
		var we *WriteError
		if !errors.As(err, &we) {
			err = &WriteError{Name: name, Err: err}
		}
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		r.Errors = append(r.Errors, err)
		return
	}
	fmt.Fprintf(w, "saved: %s\n", name)
	r.Written = append(r.Written, name)
}
