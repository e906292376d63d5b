package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pushworks/sokogrid/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.WorldConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Prefer the input configName if provided, otherwise look up the
	// config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Snapshot:       session.Engine.Snapshot(),
		WorldConfig:    session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Snapshot:       session.Engine.Snapshot(),
		WorldConfig:    session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			Snapshot:       sess.Engine.Snapshot(),
			WorldConfig:    sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, ok := engine.DirectionDelta(direction); !ok {
		return nil, fmt.Errorf("invalid direction %q: must be one of %v", direction, engine.Directions)
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		sess.Log("reset")
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "World reset to initial state",
			Timestamp: time.Now(),
		})
	}

	prevPos := sess.Engine.PlayerPosition()
	success := sess.Engine.Step(direction)
	sess.Log("move:" + direction)
	newPos := sess.Engine.PlayerPosition()
	snapshot := sess.Engine.Snapshot()

	result := &MoveResult{
		Success:  success,
		Snapshot: snapshot,
		Message:  snapshot.Message,
		Events:   events,
	}

	if success {
		pushed := 0
		if last := sess.Engine.LastAction(); last != nil {
			pushed = last.Pushed
		}
		result.Events = append(result.Events, s.extractMoveEvents(prevPos, newPos, direction, pushed, snapshot.Message)...)
		result.Step = &StepInfo{
			Idx:     1,
			Dir:     direction,
			From:    prevPos,
			To:      newPos,
			Pushed:  pushed,
			Success: true,
		}
	} else {
		result.AttemptedTo = attemptInfo(snapshot, prevPos, direction)
		result.Events = append(result.Events, GameEvent{
			Type:      "blocked",
			Message:   snapshot.Message,
			Timestamp: time.Now(),
			Position:  prevPos,
		})
	}

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       sess.Engine.PlayerPosition(),
	}

	if reset {
		sess.Engine.Reset()
		sess.Log("reset")
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "World reset to initial state",
			Timestamp: time.Now(),
		})
		result.StartPos = sess.Engine.PlayerPosition()
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if _, _, ok := engine.DirectionDelta(move); !ok {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d invalid: %q", i+1, move)
			result.StopReasonCode = "invalid_direction"
			result.StoppedOnMove = i + 1
			break
		}

		prevPos := sess.Engine.PlayerPosition()
		success := sess.Engine.Step(move)
		sess.Log("move:" + move)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, move)
			result.StoppedOnMove = i + 1

			snapshot := sess.Engine.Snapshot()
			attempted := attemptInfo(snapshot, prevPos, move)
			result.AttemptedTo = attempted
			if attempted.OutOfBounds {
				result.StopReasonCode = "blocked_boundary"
			} else if attempted.Occupant == engine.KindWall {
				result.StopReasonCode = "blocked_wall"
			} else {
				result.StopReasonCode = "blocked_chain"
			}
			break
		}

		result.MovesExecuted++
		newPos := sess.Engine.PlayerPosition()
		pushed := 0
		if last := sess.Engine.LastAction(); last != nil {
			pushed = last.Pushed
		}
		result.PushedTotal += pushed

		snapshot := sess.Engine.Snapshot()
		result.Events = append(result.Events, s.extractMoveEvents(prevPos, newPos, move, pushed, snapshot.Message)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:     i + 1,
			Dir:     move,
			From:    prevPos,
			To:      newPos,
			Pushed:  pushed,
			Success: true,
		})
	}

	snapshot := sess.Engine.Snapshot()
	result.Snapshot = snapshot
	result.EndPos = snapshot.PlayerPos
	result.Message = snapshot.Message
	result.UndoDepth = snapshot.UndoDepth
	result.PossibleMoves = sess.Engine.PossibleMoves()

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// Undo reverts the most recent move of a session
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	undone := sess.Engine.Undo()
	sess.Log("undo")
	snapshot := sess.Engine.Snapshot()

	// Auto-save session after undo
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after undo: %v\n", sessionID, err)
	}

	return &UndoResult{
		Undone:    undone,
		Snapshot:  snapshot,
		Message:   snapshot.Message,
		UndoDepth: snapshot.UndoDepth,
	}, nil
}

// Reset resets a game session to its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.WorldSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()
	sess.Log("reset")

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return sess.Engine.Snapshot(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.WorldSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// GetMoveHistory returns paginated action history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var actions []engine.ActionRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			actions = history[start:end]
		}
	}

	if actions == nil {
		actions = []engine.ActionRecord{}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available world configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific world configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a world configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from a successful move
func (s *gameServiceImpl) extractMoveEvents(prevPos, newPos engine.Position, direction string, pushed int, message string) []GameEvent {
	events := []GameEvent{
		{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, newPos.X, newPos.Y),
			Timestamp: time.Now(),
			Position:  newPos,
		},
	}

	if pushed > 0 {
		events = append(events, GameEvent{
			Type:      "push",
			Message:   message,
			Timestamp: time.Now(),
			Position:  newPos,
		})
	}

	return events
}

// attemptInfo describes the cell a failed move was aimed at.
func attemptInfo(snapshot *engine.WorldSnapshot, from engine.Position, direction string) *AttemptInfo {
	dx, dy, _ := engine.DirectionDelta(direction)
	target := from.Translate(dx, dy)

	info := &AttemptInfo{X: target.X, Y: target.Y}
	if target.X < 0 || target.Y < 0 || target.X >= snapshot.Width || target.Y >= snapshot.Height {
		info.OutOfBounds = true
		return info
	}

	for _, view := range snapshot.Objects {
		if view.Position == target && view.Layer == "solid" {
			info.Occupant = view.Kind
			break
		}
	}
	return info
}
