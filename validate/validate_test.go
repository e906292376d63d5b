package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateConfig_ValidConfig(t *testing.T) {
	// Create a valid test config
	validConfig := `{
		"name": "Test Config",
		"description": "Test configuration",
		"width": 5,
		"height": 5,
		"layout": [
			".....",
			".@...",
			"..C..",
			"...#.",
			"....."
		],
		"legend": {
			".": "floor",
			"#": "wall",
			"C": "crate",
			"@": "player"
		},
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!",
			"moved": "Moved",
			"pushed": "Pushed %d crate(s)",
			"blocked": "Blocked!",
			"out_of_bounds": "Edge of the world",
			"undone": "Undid last step",
			"nothing_to_undo": "Nothing to undo"
		}
	}`

	// Write to temp file
	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(tmpfile.Name()) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(tmpfile.Name()), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	// Create invalid JSON
	invalidJSON := `{"name": "test", invalid json}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(invalidJSON))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to bad JSON")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid JSON") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid JSON' error")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Failed to read file' error")
	}
}

func TestValidateConfig_EmptyLayout(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 5,
		"height": 5,
		"layout": [],
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to empty layout")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Layout is empty") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Layout is empty' error")
	}
}

func TestValidateConfig_NoPlayer(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 3,
		"height": 3,
		"layout": [
			"...",
			".C.",
			"..."
		],
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to missing player")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "exactly 1 player") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'exactly 1 player' error")
	}
}

func TestValidateConfig_TwoPlayers(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 3,
		"height": 3,
		"layout": [
			"@..",
			"...",
			"..@"
		],
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to duplicate player")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "exactly 1 player") && contains(err, "got 2") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'exactly 1 player, got 2' error")
	}
}

func TestValidateConfig_InvalidUndoSettings(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 3,
		"height": 3,
		"layout": [
			"...",
			".@.",
			"..."
		],
		"max_undo_depth": -5,
		"animation_length": -1,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to invalid undo settings")
	}

	foundUndoDepth := false
	foundAnimation := false
	for _, err := range result.Errors {
		if contains(err, "max_undo_depth must be positive") {
			foundUndoDepth = true
		}
		if contains(err, "animation_length must not be negative") {
			foundAnimation = true
		}
	}
	if !foundUndoDepth {
		t.Error("Expected 'max_undo_depth must be positive' error")
	}
	if !foundAnimation {
		t.Error("Expected 'animation_length must not be negative' error")
	}
}

func TestValidateConfig_PushedMessageMissingVerb(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 3,
		"height": 3,
		"layout": [
			"...",
			".@.",
			"..."
		],
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!",
			"pushed": "Pushed some crates"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to pushed message without %d")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "must contain %d") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'must contain %d' error")
	}
}

func TestValidateConfig_InvalidCharacter(t *testing.T) {
	config := `{
		"name": "Test",
		"description": "Test",
		"width": 3,
		"height": 3,
		"layout": [
			"...",
			".@X",
			"..."
		],
		"max_undo_depth": 10,
		"animation_length": 3,
		"undo_cooldown": 5,
		"messages": {
			"welcome": "Welcome!"
		},
		"legend": {}
	}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config due to invalid layout character")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Invalid character 'X'") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Invalid character' error")
	}
}

func TestValidateConnectivity_ValidLayout(t *testing.T) {
	layout := []string{
		".....",
		".@...",
		"..C..",
		"...#.",
		"....C",
	}

	result := validateConnectivity(layout)
	if !result.Valid {
		t.Errorf("Expected valid connectivity, but got errors: %v", result.Errors)
	}
}

func TestValidateConnectivity_WalledOffCrate(t *testing.T) {
	layout := []string{
		"@..##",
		"...#C",
		"...##",
		".....",
		".....",
	}

	result := validateConnectivity(layout)
	if result.Valid {
		t.Error("Expected invalid connectivity due to walled-off crate")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Connectivity failure") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Connectivity failure' error")
	}
}

func TestValidateConnectivity_NoCrates(t *testing.T) {
	layout := []string{
		"...",
		".@.",
		"...",
	}

	result := validateConnectivity(layout)
	if !result.Valid {
		t.Errorf("Expected valid connectivity with no crates, got errors: %v", result.Errors)
	}
}

func TestValidateConnectivity_EmptyLayout(t *testing.T) {
	result := validateConnectivity([]string{})
	if result.Valid {
		t.Error("Expected invalid result for empty layout")
	}

	found := false
	for _, err := range result.Errors {
		if contains(err, "Cannot validate connectivity: empty layout") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected 'Cannot validate connectivity: empty layout' error")
	}
}

// Helper function to check if a string contains a substring
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
