package service

import (
	"time"

	"github.com/pushworks/sokogrid/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string                `json:"id"`
	ConfigName     string                `json:"config_name"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	Snapshot       *engine.WorldSnapshot `json:"snapshot"`
	WorldConfig    *engine.WorldConfig   `json:"world_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool                  `json:"success"`
	Snapshot    *engine.WorldSnapshot `json:"snapshot"`
	Message     string                `json:"message"`
	Events      []GameEvent           `json:"events,omitempty"`
	Step        *StepInfo             `json:"step,omitempty"`
	AttemptedTo *AttemptInfo          `json:"attempted_to,omitempty"`
}

// UndoResult contains the result of an undo operation
type UndoResult struct {
	Undone    bool                  `json:"undone"`
	Snapshot  *engine.WorldSnapshot `json:"snapshot"`
	Message   string                `json:"message"`
	UndoDepth int                   `json:"undo_depth"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int                   `json:"moves_executed"`
	RequestedMoves int                   `json:"requested_moves"`
	Success        bool                  `json:"success"`
	Snapshot       *engine.WorldSnapshot `json:"snapshot"`
	Events         []GameEvent           `json:"events"`
	StoppedReason  string                `json:"stopped_reason,omitempty"`
	StopReasonCode string                `json:"stop_reason_code,omitempty"` // blocked_boundary|blocked_wall|blocked_chain|invalid_direction
	StoppedOnMove  int                   `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool                  `json:"truncated,omitempty"`
	Limit          int                   `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos    engine.Position `json:"start_pos"`
	EndPos      engine.Position `json:"end_pos"`
	PushedTotal int             `json:"pushed_total"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	UndoDepth     int      `json:"undo_depth"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx     int             `json:"idx"`
	Dir     string          `json:"dir"`
	From    engine.Position `json:"from"`
	To      engine.Position `json:"to"`
	Pushed  int             `json:"pushed,omitempty"`
	Success bool            `json:"success"`
}

// AttemptInfo details the first failed target cell attempted
type AttemptInfo struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	OutOfBounds bool   `json:"out_of_bounds"`
	Occupant    string `json:"occupant,omitempty"` // wall|crate, empty if the target cell itself was free
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "push", "undo", "reset", "blocked"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionRecord `json:"actions"`
	TotalActions int                   `json:"total_actions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a world configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Crates      int    `json:"crates"`
	Walls       int    `json:"walls"`
}
