// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes extracted lessons to files, one per lesson or all
// lessons combined into one.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists one named output unit.
type Sink interface {
	Write(name string, data []byte) error
}

// WriteError reports a failure persisting one output unit.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DirSink writes files into Dir, creating it when needed. Each file is
// written to a temporary file and renamed into place.
type DirSink struct {
	Dir string
}

// Path returns the path name is written to.
func (s DirSink) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Write stores data as Dir/name.
func (s DirSink) Write(name string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Name: name, Err: fmt.Errorf("creating directory %s: %w", dir, err)}
	}

	tmpFile, err := os.CreateTemp(dir, ".lesson-*.tmp")
	if err != nil {
		return &WriteError{Name: name, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return &WriteError{Name: name, Err: writeErr}
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &WriteError{Name: name, Err: closeErr}
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Name: name, Err: fmt.Errorf("renaming temp file: %w", err)}
	}
	return nil
}
