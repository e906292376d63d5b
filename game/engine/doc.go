// Package engine provides the core simulation for the Sokogrid puzzle game.
//
// The engine package implements the world-state and transactional-undo core:
//   - A layered grid map (floor, player, solid planes per cell)
//   - Push resolution: the check-then-commit algorithm that decides whether
//     the player and any chain of crates may move together
//   - A delta log that records every mutation as a reversible record, grouped
//     into per-step frames on a bounded undo stack
//   - A tick-level state machine that gates moves behind a fixed animation
//     window and debounces undo requests
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. WorldMap owns every GameObject in play and
// exposes point- and id-addressed CRUD over its MapCells. DeltaFrame and
// UndoStack make every mutation undoable without per-feature undo code.
//
// Usage:
//
//	config := engine.DefaultWorldConfig()
//	eng, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Push whatever is in the way, if legal.
//	moved := eng.Step("right")
//	eng.Undo()
//	snap := eng.Snapshot()
//
// Game Rules:
//
// The player occupies one cell of a bounded grid and moves one cell per
// step. Moving into a crate pushes it, and a whole line of crates moves as
// one unit; walls and the grid boundary block the entire chain. Every
// successful step is atomic and fully undoable. A failed step mutates
// nothing.
package engine
