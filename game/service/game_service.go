package service

import (
	"context"
	"time"

	"github.com/pushworks/sokogrid/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Undo(ctx context.Context, sessionID string) (*UndoResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.WorldSnapshot, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.WorldSnapshot, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.WorldConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.WorldConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles world configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.WorldConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.WorldConfig
	SaveConfig(name string, config *engine.WorldConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.WorldConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// ActionLog records every operation applied to the session, in order.
	// Replaying it through a fresh engine reproduces both the grid and the
	// undo stack, which is how sessions are persisted.
	ActionLog []string
}

// Log appends one operation to the session's replay log. Entries are
// "move:<direction>", "undo" or "reset".
func (s *Session) Log(entry string) {
	s.ActionLog = append(s.ActionLog, entry)
}
