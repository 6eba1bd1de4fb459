// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every stored lesson to <dir>/export.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	lessons, err := s.List(ctx)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(lessons)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored lesson to <dir>/export.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	lessons, err := s.List(ctx)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(lessons, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}
