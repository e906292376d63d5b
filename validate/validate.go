// Command validate provides a small CLI that validates world configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed characters (., #, C, @)
//   - Presence of exactly one player (@)
//   - Undo settings (max_undo_depth positive, cooldowns non-negative)
//   - Required message keys and format verbs
//   - Connectivity: every crate is adjacent-reachable from the player
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a world configuration.
type Config struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Layout          []string          `json:"layout"`
	Legend          map[string]string `json:"legend"`
	MaxUndoDepth    int               `json:"max_undo_depth"`
	AnimationLength int               `json:"animation_length"`
	UndoCooldown    int               `json:"undo_cooldown"`
	Messages        map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, grid/legend validation, message presence,
// and reachability analysis for crates.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate grid
	if len(config.Layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
	}

	if config.Height > 0 && len(config.Layout) != config.Height {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d rows, height says %d", len(config.Layout), config.Height))
	}

	gridWidth := -1
	playerCount := 0
	crateCount := 0
	wallCount := 0
	validChars := map[rune]bool{
		'.': true, // Floor
		'#': true, // Wall
		'C': true, // Crate
		'@': true, // Player
	}

	for i, row := range config.Layout {
		if gridWidth == -1 {
			gridWidth = len(row)
		} else if len(row) != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
			switch char {
			case '@':
				playerCount++
			case 'C':
				crateCount++
			case '#':
				wallCount++
			}
		}
	}

	if config.Width > 0 && gridWidth != -1 && gridWidth != config.Width {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout rows are %d wide, width says %d", gridWidth, config.Width))
	}

	// Validate game elements
	if playerCount != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 player (@), got %d", playerCount))
	}

	// Validate undo settings
	if config.MaxUndoDepth <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_undo_depth must be positive, got %d", config.MaxUndoDepth))
	}

	if config.AnimationLength < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("animation_length must not be negative, got %d", config.AnimationLength))
	}

	if config.UndoCooldown < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("undo_cooldown must not be negative, got %d", config.UndoCooldown))
	}

	// Validate messages
	if _, exists := config.Messages["welcome"]; !exists {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required message: welcome")
	}
	if pushed, exists := config.Messages["pushed"]; exists && !strings.Contains(pushed, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "Message 'pushed' must contain %d for the crate count")
	}

	// Connectivity validation - check if all crates are reachable from the player
	if result.Valid {
		reachabilityResult := validateConnectivity(config.Layout)
		if !reachabilityResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, reachabilityResult.Errors...)
		} else {
			result.Errors = append(result.Errors, reachabilityResult.Errors...)
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", gridWidth, len(config.Layout)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Crates: %d", crateCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walls: %d", wallCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Undo depth: %d (cooldown %d ticks)", config.MaxUndoDepth, config.UndoCooldown))
	}

	return result
}

// validateConnectivity ensures every crate cell is reachable from the player
// using 4-directional movement over non-wall cells. A crate the player can
// never stand next to can never be pushed, which usually indicates a layout
// mistake. It reports any unreachable crates in an aggregated ValidationResult.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	// Find the player and all crates
	var player []int
	var crates [][]int

	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			switch layout[y][x] {
			case '@':
				player = []int{x, y}
			case 'C':
				crates = append(crates, []int{x, y})
			}
		}
	}

	if player == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No player position found for connectivity test")
		return result
	}

	if len(crates) == 0 {
		result.Errors = append(result.Errors, "✓ Connectivity: no crates to reach")
		return result
	}

	// Flood fill from the player to find all reachable cells. Crates count
	// as passable here: a crate cell is reachable exactly when the player
	// can stand on an adjacent cell, which is the pushing precondition.
	visited := make(map[string]bool)
	queue := [][]int{player}

	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != '#'
	}

	// Flood fill algorithm
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		// Check all 4 directions
		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	// Check if all crates are reachable
	unreachableCrates := []string{}
	for _, crate := range crates {
		cx, cy := crate[0], crate[1]
		key := fmt.Sprintf("%d,%d", cx, cy)
		if !visited[key] {
			unreachableCrates = append(unreachableCrates, fmt.Sprintf("Crate at (%d,%d)", cx, cy))
		}
	}

	if len(unreachableCrates) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d crates unreachable from player", len(unreachableCrates), len(crates)))
		for _, crate := range unreachableCrates {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", crate))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d crates reachable from player", len(crates)))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
