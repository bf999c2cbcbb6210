// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the relationship index to YAML or JSON files for
// use outside the CLI. Implements: prd004-cache (R4).
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/psalm-parallels/pkg/types"
)

// Entry is one reference and its relations, in index order.
type Entry struct {
	Reference string   `json:"reference" yaml:"reference"`
	Related   []string `json:"related" yaml:"related"`
}

// Entries flattens the index into a slice sorted by reference so exports
// are stable across runs.
func Entries(idx types.RelationshipIndex) []Entry {
	refs := make([]string, 0, len(idx))
	for ref := range idx {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	entries := make([]Entry, len(refs))
	for i, ref := range refs {
		entries[i] = Entry{Reference: ref, Related: idx[ref]}
	}
	return entries
}

// WriteYAML writes the index to dir/export.yaml.
func WriteYAML(idx types.RelationshipIndex, dir string) (string, error) {
	data, err := yaml.Marshal(Entries(idx))
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(dir, "export.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes the index to dir/export.json.
func WriteJSON(idx types.RelationshipIndex, dir string) (string, error) {
	data, err := json.MarshalIndent(Entries(idx), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(dir, "export.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
