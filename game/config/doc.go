// Package config provides world configuration management for the push-puzzle game.
//
// The config package handles:
//   - Loading world configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// World configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid layout using character mapping ('.'=floor, '#'=wall, 'C'=crate, '@'=player)
//   - Undo parameters (maximum depth)
//   - Tick timing (animation length, undo cooldown)
//   - Game messages for various events
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	worldConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Proper grid dimensions and layout
//   - Valid layout characters and legend mappings
//   - Exactly one player start position
//   - Required message templates
//   - Positive undo depth and non-negative timings
package config
