// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package extension provides runtime lifecycle management for bot extensions.
package extension

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Entry describes one extension in the registry file.
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Protected   bool   `yaml:"protected,omitempty" json:"protected,omitempty"`
}

// Registry is the fixed set of known extensions, read once at process start.
type Registry struct {
	Root       string  `yaml:"root" json:"root"`
	Extensions []Entry `yaml:"extensions" json:"extensions"`
}

// maxIDLength is the maximum allowed length for extension ids.
const maxIDLength = 128

// idPattern validates extension ids: dotted lowercase path segments, each
// starting with a letter, at least two segments deep.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

// ParseRegistry parses and validates a registry file.
func ParseRegistry(data []byte) (*Registry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("registry data is empty")
	}

	var r Registry
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

// LoadRegistry reads and parses the registry file at path.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return ParseRegistry(data)
}

// Validate checks registry constraints.
func (r *Registry) Validate() error {
	if r.Root == "" || strings.ContainsAny(r.Root, " \t") {
		return fmt.Errorf("root %q must be a non-empty dotted path prefix", r.Root)
	}
	if len(r.Extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}

	seen := make(map[string]struct{}, len(r.Extensions))
	for _, e := range r.Extensions {
		if e.ID == "" || !idPattern.MatchString(e.ID) {
			return fmt.Errorf("id %q must be a dotted lowercase path of at least two segments", e.ID)
		}
		if len(e.ID) > maxIDLength {
			return fmt.Errorf("id must be %d characters or less, got %d", maxIDLength, len(e.ID))
		}
		if !strings.HasPrefix(e.ID, r.Root+".") {
			return fmt.Errorf("id %q must start with root %q", e.ID, r.Root)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate extension id %q", e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Version == "" {
			return fmt.Errorf("extension %q: version is required", e.ID)
		}
		if _, err := semver.NewVersion(e.Version); err != nil {
			return fmt.Errorf("extension %q: invalid version %q: %w", e.ID, e.Version, err)
		}
	}

	return nil
}

// IDs returns all extension ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Extensions))
	for _, e := range r.Extensions {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether id is a known extension.
func (r *Registry) Has(id string) bool {
	for _, e := range r.Extensions {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Protected returns the ids of extensions that must never be unloaded.
func (r *Registry) Protected() []string {
	var ids []string
	for _, e := range r.Extensions {
		if e.Protected {
			ids = append(ids, e.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// RootDepth returns the number of path segments in the registry root prefix.
func (r *Registry) RootDepth() int {
	return len(strings.Split(r.Root, "."))
}
