// Package mcp provides a Model Context Protocol interface for the puzzle server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for every game operation
//   - Session-aware command execution
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the running API server, so MCP agents and HTTP clients
// always observe the same state.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current world snapshot with grid rendering
//   - move: Execute a single directional step (pushes crates)
//   - bulk_move: Execute multiple steps in sequence
//   - undo: Revert the most recent successful step
//   - reset_game: Rebuild the world from its config
//   - move_history: Retrieve action history with pagination
//   - create_session: Create a new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available level configurations
//   - describe_cell: Inspect one grid cell (floor, crate or wall)
//   - game_instructions: Full rules reference for agents
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously solve push puzzles
//   - Verify grid contents cell by cell before committing to pushes
//   - Recover from mistakes through bounded undo
//   - Manage multiple game sessions independently
package mcp
