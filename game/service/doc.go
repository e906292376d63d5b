// Package service provides the business logic layer for the push-puzzle game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Move and undo processing
//   - Session lifecycle management
//   - Action history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages world configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with an independent grid and undo stack.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves and undo them
//	moveResult, err := gameService.Move(ctx, sessionInfo.ID, "up", false)
//	undoResult, err := gameService.Undo(ctx, sessionInfo.ID)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different
// configurations. Sessions track creation time, last access time, and an
// action log that is replayed to restore persisted sessions.
package service
