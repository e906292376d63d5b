package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WorldConfig describes a level: grid dimensions, the layout, and the
// engine's timing/undo parameters. Configs are loaded from JSON files.
//
// Layout characters: '.' empty floor, '#' wall, 'C' crate, '@' player start.
type WorldConfig struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	Layout          []string          `json:"layout"`
	Legend          map[string]string `json:"legend,omitempty"`
	MaxUndoDepth    int               `json:"max_undo_depth"`
	AnimationLength int               `json:"animation_length"`
	UndoCooldown    int               `json:"undo_cooldown"`
	Messages        struct {
		Welcome       string `json:"welcome"`
		Moved         string `json:"moved"`
		Pushed        string `json:"pushed"`
		Blocked       string `json:"blocked"`
		OutOfBounds   string `json:"out_of_bounds"`
		Undone        string `json:"undone"`
		NothingToUndo string `json:"nothing_to_undo"`
	} `json:"messages"`
}

// layoutLegend is the fixed meaning of each layout character.
var layoutLegend = map[string]string{
	".": "floor",
	"#": "wall",
	"C": "crate",
	"@": "player",
}

// ValidateWorldConfig validates a world configuration for correctness.
func ValidateWorldConfig(config *WorldConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Height)
	}

	if config.MaxUndoDepth < 1 {
		return fmt.Errorf("config validation: max_undo_depth must be positive, got %d", config.MaxUndoDepth)
	}
	if config.AnimationLength < 0 {
		return fmt.Errorf("config validation: animation_length must not be negative, got %d", config.AnimationLength)
	}
	if config.UndoCooldown < 0 {
		return fmt.Errorf("config validation: undo_cooldown must not be negative, got %d", config.UndoCooldown)
	}

	if len(config.Layout) != config.Height {
		return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
			config.Height, len(config.Layout))
	}

	playerCount := 0
	for i, row := range config.Layout {
		if len(row) != config.Width {
			return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
				i+1, config.Width, len(row))
		}
		for j, char := range row {
			switch char {
			case '.', '#', 'C':
			case '@':
				playerCount++
			default:
				return fmt.Errorf("config validation: invalid character %q at row %d, col %d", char, i+1, j+1)
			}
		}
	}

	if playerCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one player (@), got %d", playerCount)
	}

	// Legend is optional but must not contradict the fixed meanings.
	for key, expected := range layoutLegend {
		if value, ok := config.Legend[key]; ok && value != expected {
			return fmt.Errorf("config validation: legend[%q] must be %q, got %q", key, expected, value)
		}
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Pushed != "" && !strings.Contains(config.Messages.Pushed, "%d") {
		return fmt.Errorf("config validation: messages.pushed must contain %%d for the crate count")
	}

	return nil
}

// LoadWorldConfig loads a world configuration from a JSON file.
func LoadWorldConfig(filename string) (*WorldConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config WorldConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateWorldConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a world configuration by name from the configs
// directory.
func LoadConfigByName(configName string) (*WorldConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config WorldConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	if err := ValidateWorldConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// DefaultWorldConfig returns the reference world: a 10×10 grid with the
// player at (3,3), a wall at (5,5), and a crate at (8,4).
func DefaultWorldConfig() *WorldConfig {
	config := &WorldConfig{
		Name:        "classic",
		Description: "The original open room: one wall, one crate",
		Width:       10,
		Height:      10,
		Layout: []string{
			"..........",
			"..........",
			"..........",
			"...@......",
			"........C.",
			".....#....",
			"..........",
			"..........",
			"..........",
			"..........",
		},
		MaxUndoDepth:    DefaultMaxUndoDepth,
		AnimationLength: DefaultAnimationLength,
		UndoCooldown:    DefaultUndoCooldown,
	}
	config.Messages.Welcome = "Push the crates around. Every step can be undone."
	config.Messages.Moved = "Moved"
	config.Messages.Pushed = "Pushed %d crate(s)"
	config.Messages.Blocked = "Blocked by a wall"
	config.Messages.OutOfBounds = "Blocked by the edge of the world"
	config.Messages.Undone = "Undid last step"
	config.Messages.NothingToUndo = "Nothing to undo"
	return config
}

// NewWorldFromConfig builds the initial grid for a validated configuration.
// All placement is quiet: world setup produces no history.
func NewWorldFromConfig(config *WorldConfig, ids *IDAllocator) *WorldMap {
	world := NewWorldMap(config.Width, config.Height)

	for y, row := range config.Layout {
		for x, char := range row {
			switch char {
			case '#':
				world.PutQuiet(NewWall(ids, x, y))
			case 'C':
				world.PutQuiet(NewCrate(ids, x, y))
			case '@':
				player := NewPlayer(ids, x, y)
				world.PutQuiet(player)
				world.AttachPlayer(player.ID())
			}
		}
	}

	return world
}
