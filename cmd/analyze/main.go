// Command analyze prints quick, human-readable heuristics about level
// configuration files in the project's configs directory. It summarizes
// dimensions, undo settings, counts of crates and walls, and highlights
// crates that start in dead corners (unsolvable without undo).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisConfig is a light struct for reading config files used by analysis.
type AnalysisConfig struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Layout          []string          `json:"layout"`
	Legend          map[string]string `json:"legend"`
	MaxUndoDepth    int               `json:"max_undo_depth"`
	AnimationLength int               `json:"animation_length"`
	UndoCooldown    int               `json:"undo_cooldown"`
}

// AnalysisPoint denotes a grid coordinate used during analysis output.
type AnalysisPoint struct {
	X, Y int
}

func main() {
	files, err := filepath.Glob(filepath.Join("configs", "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No config files found under configs/ (err: %v)\n", err)
		os.Exit(1)
	}

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(configFile))
		analyzeConfig(configFile)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Grid Size: %d x %d\n", config.Width, config.Height)
	fmt.Printf("Max Undo Depth: %d\n", config.MaxUndoDepth)
	fmt.Printf("Animation Length: %d ticks\n", config.AnimationLength)
	fmt.Printf("Undo Cooldown: %d ticks\n", config.UndoCooldown)

	// Count walls and crates, find the player
	var crates []AnalysisPoint
	var walls []AnalysisPoint
	var playerPos AnalysisPoint
	foundPlayer := false

	for y, row := range config.Layout {
		for x, cell := range row {
			switch cell {
			case 'C':
				crates = append(crates, AnalysisPoint{x, y})
			case '#':
				walls = append(walls, AnalysisPoint{x, y})
			case '@':
				playerPos = AnalysisPoint{x, y}
				foundPlayer = true
			}
		}
	}

	if foundPlayer {
		fmt.Printf("Player Start: (%d, %d)\n", playerPos.X, playerPos.Y)
	} else {
		fmt.Printf("⚠️  WARNING: no player (@) in layout\n")
	}
	fmt.Printf("Total Crates: %d\n", len(crates))
	fmt.Printf("Total Walls: %d\n", len(walls))

	// A crate in a corner (two perpendicular blocked sides) can never be
	// pushed again; flag such starting positions as likely design mistakes.
	blocked := func(x, y int) bool {
		if x < 0 || y < 0 || y >= len(config.Layout) || x >= len(config.Layout[y]) {
			return true
		}
		return config.Layout[y][x] == '#'
	}

	var deadCorners []AnalysisPoint
	for _, crate := range crates {
		horizontal := blocked(crate.X-1, crate.Y) || blocked(crate.X+1, crate.Y)
		vertical := blocked(crate.X, crate.Y-1) || blocked(crate.X, crate.Y+1)
		if horizontal && vertical {
			deadCorners = append(deadCorners, crate)
		}
	}

	if len(deadCorners) > 0 {
		fmt.Printf("⚠️  WARNING: %d crates start in dead corners (cannot be pushed in any direction pair)!\n", len(deadCorners))
		for i, p := range deadCorners {
			if i < 5 { // Show first 5 dead crates
				fmt.Printf("   Dead corner crate: (%d, %d)\n", p.X, p.Y)
			}
		}
		if len(deadCorners) > 5 {
			fmt.Printf("   ... and %d more\n", len(deadCorners)-5)
		}
	} else {
		fmt.Printf("✅ No crates start in dead corners\n")
	}

	// Crates sitting against an edge can only ever slide along that edge.
	edgeCrates := 0
	for _, crate := range crates {
		if crate.X == 0 || crate.Y == 0 || crate.X == config.Width-1 || crate.Y == config.Height-1 {
			edgeCrates++
		}
	}
	if edgeCrates > 0 {
		fmt.Printf("ℹ️  %d crates start on an edge (pushable along that edge only)\n", edgeCrates)
	}

	// Rough mobility estimate: free cells vs total cells
	totalCells := config.Width * config.Height
	occupied := len(walls) + len(crates)
	if foundPlayer {
		occupied++
	}
	free := totalCells - occupied
	fmt.Printf("Free cells: %d/%d (%.0f%%)\n", free, totalCells, 100*float64(free)/float64(totalCells))
}
