// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

//go:build ignore

// Script to generate the example scenario library.
// Run with: go run scripts/gen_scenarios.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

const outDir = "scenarios"

func main() {
	scenarios := []*datatypes.ScenarioSpec{
		{
			Name:        "corridor-1d",
			Description: "A line segment with a blocked interval in the middle",
			Space: datatypes.SpaceSpec{
				Lower:       []float64{0},
				Upper:       []float64{10},
				Resolutions: []float64{1},
				Obstacles: []datatypes.ObstacleSpec{
					{Type: "aabb", Min: []float64{4}, Max: []float64{6}},
				},
			},
			Start: []float64{0},
			Goal:  []float64{3},
			Seed:  1,
		},
		{
			Name:        "narrow-gap",
			Description: "Two rooms joined by a narrow corridor",
			Space: datatypes.SpaceSpec{
				Lower: []float64{0, 0},
				Upper: []float64{10, 10},
				Obstacles: []datatypes.ObstacleSpec{
					{Type: "aabb", Min: []float64{4, 0}, Max: []float64{6, 4.5}},
					{Type: "aabb", Min: []float64{4, 5.5}, Max: []float64{6, 10}},
				},
			},
			Start: []float64{1, 5},
			Goal:  []float64{9, 5},
			Seed:  7,
			Planner: &datatypes.PlannerSpec{
				Iterations: 300,
				Attempts:   3,
			},
		},
		{
			Name:        "box-3d",
			Description: "A 3D box with two spherical obstacles",
			Space: datatypes.SpaceSpec{
				Lower: []float64{-5, -5, -5},
				Upper: []float64{5, 5, 5},
				Obstacles: []datatypes.ObstacleSpec{
					{Type: "ball", Center: []float64{0, 0, 0}, Radius: 2},
					{Type: "ball", Center: []float64{2.5, 2.5, 0}, Radius: 1},
				},
			},
			Start: []float64{-4, -4, -4},
			Goal:  []float64{4, 4, 4},
			Seed:  11,
			Planner: &datatypes.PlannerSpec{
				Iterations: 500,
			},
		},
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("create %s: %v", outDir, err)
	}

	for _, spec := range scenarios {
		if err := spec.Validate(); err != nil {
			log.Fatalf("scenario %s is invalid: %v", spec.Name, err)
		}
		data, err := yaml.Marshal(spec)
		if err != nil {
			log.Fatalf("marshal %s: %v", spec.Name, err)
		}
		path := filepath.Join(outDir, spec.Name+".yaml")
		if err := os.WriteFile(path, data, 0644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	fmt.Printf("done: %d scenarios\n", len(scenarios))
}
