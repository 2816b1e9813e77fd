// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const corridorYAML = `
name: corridor
description: two rooms joined by a narrow corridor
space:
  lower: [0, 0]
  upper: [10, 10]
  obstacles:
    - type: aabb
      min: [4, 0]
      max: [6, 4.5]
    - type: aabb
      min: [4, 5.5]
      max: [6, 10]
start: [1, 5]
goal: [9, 5]
`

const boxYAML = `
description: a 1D interval with a blocked middle
space:
  lower: [0]
  upper: [10]
  obstacles:
    - type: aabb
      min: [4]
      max: [6]
`

func writeScenario(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLibrary_Reload(t *testing.T) {
	t.Run("loads scenario files", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", corridorYAML)
		writeScenario(t, dir, "interval.yml", boxYAML)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}

		if lib.Len() != 2 {
			t.Fatalf("Len = %d, want 2", lib.Len())
		}

		spec, ok := lib.Get("corridor")
		if !ok {
			t.Fatal("Get(corridor) should hit")
		}
		if spec.Description != "two rooms joined by a narrow corridor" {
			t.Errorf("Description = %q", spec.Description)
		}
		if len(spec.Space.Obstacles) != 2 {
			t.Errorf("obstacles = %d, want 2", len(spec.Space.Obstacles))
		}
	})

	t.Run("empty directory loads nothing", func(t *testing.T) {
		lib := NewLibrary(t.TempDir())
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if lib.Len() != 0 {
			t.Errorf("Len = %d, want 0", lib.Len())
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		lib := NewLibrary(filepath.Join(t.TempDir(), "nope"))
		if err := lib.Reload(); err == nil {
			t.Error("expected error for missing directory, got nil")
		}
	})

	t.Run("skips malformed and invalid files", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", corridorYAML)
		writeScenario(t, dir, "broken.yaml", "space: [not, a, map")
		writeScenario(t, dir, "inverted.yaml", `
space:
  lower: [10]
  upper: [0]
`)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload should not fail for per-file problems: %v", err)
		}
		if lib.Len() != 1 {
			t.Errorf("Len = %d, want 1 (only the good file)", lib.Len())
		}
	})

	t.Run("ignores non-scenario files and subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", corridorYAML)
		writeScenario(t, dir, "README.md", "# scenarios")
		if err := os.Mkdir(filepath.Join(dir, "archive"), 0755); err != nil {
			t.Fatalf("Mkdir: %v", err)
		}

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if lib.Len() != 1 {
			t.Errorf("Len = %d, want 1", lib.Len())
		}
	})

	t.Run("filename wins over the name field", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", `
name: something-else
space:
  lower: [0]
  upper: [1]
`)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}

		spec, ok := lib.Get("corridor")
		if !ok {
			t.Fatal("scenario should be keyed by filename")
		}
		if spec.Name != "corridor" {
			t.Errorf("Name = %q, want %q", spec.Name, "corridor")
		}
		if _, ok := lib.Get("something-else"); ok {
			t.Error("the name field must not create a second key")
		}
	})

	t.Run("sanitizes uppercase filenames", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "Corridor.YAML", corridorYAML)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}

		if _, ok := lib.Get("corridor"); !ok {
			t.Error("uppercase filename should load under its lowercase name")
		}
	})

	t.Run("duplicate names keep one entry", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", corridorYAML)
		writeScenario(t, dir, "corridor.yml", boxYAML)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if lib.Len() != 1 {
			t.Errorf("Len = %d, want 1", lib.Len())
		}
	})

	t.Run("reload swaps the set wholesale", func(t *testing.T) {
		dir := t.TempDir()
		writeScenario(t, dir, "corridor.yaml", corridorYAML)
		writeScenario(t, dir, "interval.yaml", boxYAML)

		lib := NewLibrary(dir)
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}
		if lib.Len() != 2 {
			t.Fatalf("Len = %d, want 2", lib.Len())
		}

		if err := os.Remove(filepath.Join(dir, "interval.yaml")); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if err := lib.Reload(); err != nil {
			t.Fatalf("Reload: %v", err)
		}

		if lib.Len() != 1 {
			t.Errorf("Len = %d, want 1 after removal", lib.Len())
		}
		if _, ok := lib.Get("interval"); ok {
			t.Error("removed scenario should be gone after reload")
		}
	})
}

func TestLibrary_Get_Miss(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	if _, ok := lib.Get("ghost"); ok {
		t.Error("Get on an empty library should miss")
	}
}

func TestLibrary_List(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "zeta.yaml", boxYAML)
	writeScenario(t, dir, "alpha.yaml", corridorYAML)

	lib := NewLibrary(dir)
	if err := lib.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	list := lib.List()
	if len(list) != 2 {
		t.Fatalf("List = %d entries, want 2", len(list))
	}
	if list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Errorf("List should be sorted by name, got %q then %q", list[0].Name, list[1].Name)
	}
	if list[0].Dimensions != 2 {
		t.Errorf("alpha Dimensions = %d, want 2", list[0].Dimensions)
	}
	if list[0].Obstacles != 2 {
		t.Errorf("alpha Obstacles = %d, want 2", list[0].Obstacles)
	}
	if list[1].Dimensions != 1 {
		t.Errorf("zeta Dimensions = %d, want 1", list[1].Dimensions)
	}
}

func TestIsScenarioFile(t *testing.T) {
	cases := map[string]bool{
		"corridor.yaml": true,
		"corridor.yml":  true,
		"Corridor.YAML": true,
		"corridor.json": false,
		"corridor":      false,
		"README.md":     false,
	}
	for name, want := range cases {
		if got := isScenarioFile(name); got != want {
			t.Errorf("isScenarioFile(%q) = %v, want %v", name, got, want)
		}
	}
}
