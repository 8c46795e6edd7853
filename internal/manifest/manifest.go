// Package manifest loads the juno.yaml project manifest: the entry program
// and the directories the driver searches for it, in the teacher's
// eval_harness YAML-loading idiom (internal/eval_harness/spec.go).
// The core packages (ast, types, resolve, infer) never touch YAML or the
// filesystem — locating and reading the entry program named by a Manifest
// is the driver's job (cmd/juno), not this package's.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a juno project: its entry program and the directories
// the driver searches, in order, for that entry program. Imported modules
// are not loaded from these directories; they must be part of the entry
// program itself.
type Manifest struct {
	Entry       string   `yaml:"entry"`
	SearchPaths []string `yaml:"search_paths"`
	ModulePath  string   `yaml:"module_path"`
}

// Load reads and validates a manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest for the fields the driver requires.
func (m *Manifest) Validate() error {
	if m.Entry == "" {
		return fmt.Errorf("manifest missing required field: entry")
	}
	if m.ModulePath == "" {
		return fmt.Errorf("manifest missing required field: module_path")
	}
	return nil
}

// AllSearchPaths returns SearchPaths with "." always present (prepended when
// missing), so the entry program is also looked for directly beside the
// manifest.
func (m *Manifest) AllSearchPaths() []string {
	for _, p := range m.SearchPaths {
		if p == "." {
			return m.SearchPaths
		}
	}
	return append([]string{"."}, m.SearchPaths...)
}
