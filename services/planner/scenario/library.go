// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scenario loads and serves named planning scenarios from YAML
// files on disk.
//
// # Description
//
// A scenario directory is flat: every *.yaml or *.yml file describes one
// ScenarioSpec, keyed by its filename without the extension. Reload scans
// the whole directory and swaps the in-memory set atomically, so lookups
// never observe a half-loaded library. A malformed file is skipped with a
// warning rather than failing the reload; one bad commit should not take
// every scenario offline.
//
// # Thread Safety
//
// Safe for concurrent use. Returned specs are shared snapshots — callers
// must treat them as read-only.
package scenario

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AleutianMotion/pkg/validation"
	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

// Summary is the listing form of a stored scenario.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Dimensions  int    `json:"dimensions"`
	Obstacles   int    `json:"obstacles"`
}

// Library holds the scenarios loaded from a directory.
type Library struct {
	dir string

	mu        sync.RWMutex
	scenarios map[string]*datatypes.ScenarioSpec
}

// NewLibrary creates an empty library over the given directory.
// Call Reload to populate it.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:       dir,
		scenarios: make(map[string]*datatypes.ScenarioSpec),
	}
}

// Dir returns the directory the library reads from.
func (l *Library) Dir() string {
	return l.dir
}

// Reload rescans the scenario directory and swaps the loaded set.
//
// # Description
//
// Reads every *.yaml and *.yml file in the directory (non-recursive),
// derives each scenario's name from its filename, validates the spec, and
// installs the new set in one step. Files that fail to parse or validate
// are logged and skipped.
//
// # Outputs
//
//   - error: Non-nil only when the directory itself cannot be read.
//     Per-file problems never fail the reload.
func (l *Library) Reload() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read scenario directory: %w", err)
	}

	loaded := make(map[string]*datatypes.ScenarioSpec)
	for _, entry := range entries {
		if entry.IsDir() || !isScenarioFile(entry.Name()) {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		spec, name, err := loadScenarioFile(path)
		if err != nil {
			slog.Warn("Skipping unusable scenario file",
				"path", path,
				"error", err)
			continue
		}
		if _, dup := loaded[name]; dup {
			// corridor.yaml and corridor.yml would collide.
			slog.Warn("Skipping scenario with duplicate name",
				"path", path,
				"name", name)
			continue
		}
		loaded[name] = spec
	}

	l.mu.Lock()
	l.scenarios = loaded
	l.mu.Unlock()

	slog.Info("Scenario library loaded",
		"dir", l.dir,
		"count", len(loaded))
	return nil
}

// Get returns the named scenario. The returned spec is shared; callers
// must not mutate it.
func (l *Library) Get(name string) (*datatypes.ScenarioSpec, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	spec, ok := l.scenarios[name]
	return spec, ok
}

// List returns a summary of every loaded scenario, sorted by name.
func (l *Library) List() []Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Summary, 0, len(l.scenarios))
	for name, spec := range l.scenarios {
		out = append(out, Summary{
			Name:        name,
			Description: spec.Description,
			Dimensions:  spec.Dim(),
			Obstacles:   len(spec.Space.Obstacles),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of loaded scenarios.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.scenarios)
}

// isScenarioFile reports whether a directory entry looks like a scenario.
func isScenarioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// loadScenarioFile reads, names, and validates one scenario file. The
// filename is the source of truth for the name; a conflicting name field
// inside the file is overwritten so lookups and listings always agree.
func loadScenarioFile(path string) (*datatypes.ScenarioSpec, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	var spec datatypes.ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, "", fmt.Errorf("yaml: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name, err := validation.SanitizeScenarioName(base)
	if err != nil {
		return nil, "", err
	}
	spec.Name = name

	if err := spec.Validate(); err != nil {
		return nil, "", err
	}
	return &spec, name, nil
}
