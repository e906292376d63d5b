package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateWorldConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(config *WorldConfig)
		wantErr bool
	}{
		{"default is valid", func(c *WorldConfig) {}, false},
		{"missing name", func(c *WorldConfig) { c.Name = "" }, true},
		{"missing description", func(c *WorldConfig) { c.Description = "" }, true},
		{"width too small", func(c *WorldConfig) { c.Width = 1 }, true},
		{"width too large", func(c *WorldConfig) { c.Width = 65 }, true},
		{"height too small", func(c *WorldConfig) { c.Height = 0 }, true},
		{"zero undo depth", func(c *WorldConfig) { c.MaxUndoDepth = 0 }, true},
		{"negative animation length", func(c *WorldConfig) { c.AnimationLength = -1 }, true},
		{"negative undo cooldown", func(c *WorldConfig) { c.UndoCooldown = -1 }, true},
		{"zero animation length allowed", func(c *WorldConfig) { c.AnimationLength = 0 }, false},
		{"row count mismatch", func(c *WorldConfig) { c.Layout = c.Layout[:9] }, true},
		{"row width mismatch", func(c *WorldConfig) { c.Layout[0] = "....." }, true},
		{"invalid character", func(c *WorldConfig) { c.Layout[0] = "....X....." }, true},
		{"no player", func(c *WorldConfig) { c.Layout[3] = ".........." }, true},
		{"two players", func(c *WorldConfig) { c.Layout[0] = "@........." }, true},
		{"legend matches", func(c *WorldConfig) {
			c.Legend = map[string]string{"#": "wall", "@": "player"}
		}, false},
		{"legend contradicts", func(c *WorldConfig) {
			c.Legend = map[string]string{"#": "crate"}
		}, true},
		{"missing welcome message", func(c *WorldConfig) { c.Messages.Welcome = "" }, true},
		{"pushed message without count verb", func(c *WorldConfig) {
			c.Messages.Pushed = "Pushed some crates"
		}, true},
		{"empty pushed message allowed", func(c *WorldConfig) { c.Messages.Pushed = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultWorldConfig()
			tt.mutate(config)
			err := ValidateWorldConfig(config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorldConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWorldConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.json")

	data, err := json.Marshal(DefaultWorldConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("LoadWorldConfig() error = %v", err)
	}
	if config.Name != "classic" {
		t.Errorf("name = %q, want %q", config.Name, "classic")
	}
	if config.Width != 10 || config.Height != 10 {
		t.Errorf("dimensions = %dx%d, want 10x10", config.Width, config.Height)
	}
}

func TestLoadWorldConfigMissingFile(t *testing.T) {
	if _, err := LoadWorldConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadWorldConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWorldConfig(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoadWorldConfigRejectsInvalidContent(t *testing.T) {
	config := DefaultWorldConfig()
	config.Layout[3] = ".........." // drop the player

	path := filepath.Join(t.TempDir(), "noplayer.json")
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadWorldConfig(path); err == nil {
		t.Error("expected validation error for a layout without a player")
	}
}

func TestLoadWorldConfigHonorsConfigDir(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(DefaultWorldConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "classic.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_DIR", dir)

	config, err := LoadWorldConfig("configs/classic.json")
	if err != nil {
		t.Fatalf("LoadWorldConfig() error = %v", err)
	}
	if config.Name != "classic" {
		t.Errorf("name = %q, want %q", config.Name, "classic")
	}
}

func TestNewWorldFromConfig(t *testing.T) {
	config := DefaultWorldConfig()
	ids := NewIDAllocator()
	world := NewWorldFromConfig(config, ids)

	if world.Width() != 10 || world.Height() != 10 {
		t.Fatalf("dimensions = %dx%d, want 10x10", world.Width(), world.Height())
	}
	if world.PlayerPos() != (Position{X: 3, Y: 3}) {
		t.Errorf("player at %v, want (3,3)", world.PlayerPos())
	}

	wall := world.View(5, 5, LayerSolid)
	if wall == nil || wall.Pushable() {
		t.Error("expected a non-pushable wall at (5,5)")
	}
	crate := world.View(8, 4, LayerSolid)
	if crate == nil || !crate.Pushable() {
		t.Error("expected a pushable crate at (8,4)")
	}
	if world.ObjectCount() != 3 {
		t.Errorf("object count = %d, want 3", world.ObjectCount())
	}
}

func TestDefaultWorldConfigIsValid(t *testing.T) {
	if err := ValidateWorldConfig(DefaultWorldConfig()); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}
