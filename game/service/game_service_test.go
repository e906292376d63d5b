package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pushworks/sokogrid/game/engine"
	"github.com/pushworks/sokogrid/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.WorldConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.WorldConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.WorldConfig
}

func NewMockConfigManager() *MockConfigManager {
	// A tight room: player (1,1), crate (2,2), wall (3,2)
	testConfig := engine.DefaultWorldConfig()
	testConfig.Name = "test"
	testConfig.Description = "Test world"
	testConfig.Width = 5
	testConfig.Height = 5
	testConfig.Layout = []string{
		".....",
		".@...",
		"..C#.",
		".....",
		".....",
	}

	return &MockConfigManager{
		configs: map[string]*engine.WorldConfig{
			"test":    testConfig,
			"default": testConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.WorldConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("config not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.WorldConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.WorldConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if session == nil {
					t.Fatal("CreateSession() returned nil session")
				}
				if session.Snapshot == nil {
					t.Error("CreateSession() returned nil snapshot")
				}
			}
		})
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	tests := []struct {
		name      string
		sessionID string
		direction string
		reset     bool
		wantErr   bool
	}{
		{
			name:      "valid move up",
			sessionID: sessionInfo.ID,
			direction: "up",
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "valid move with reset",
			sessionID: sessionInfo.ID,
			direction: "right",
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			direction: "up",
			reset:     false,
			wantErr:   true,
		},
		{
			name:      "invalid direction",
			sessionID: sessionInfo.ID,
			direction: "diagonal",
			reset:     false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, tt.sessionID, tt.direction, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("Move() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Move() returned nil result")
			}
		})
	}

	// StepInfo on a push and AttemptInfo on a failure
	_, _ = svc.Reset(ctx, sessionInfo.ID)

	// Walk to (1,2), then push the crate at (2,2) into the wall at (3,2).
	res1, err := svc.Move(ctx, sessionInfo.ID, "down", false)
	if err != nil {
		t.Fatalf("Move down failed unexpectedly: %v", err)
	}
	if res1.Step == nil || !res1.Success {
		t.Fatalf("Expected success with StepInfo, got success=%v step=%v", res1.Success, res1.Step)
	}
	if res1.Step.Dir != "down" || res1.Step.To != (engine.Position{X: 1, Y: 2}) {
		t.Errorf("Invalid StepInfo: %+v", res1.Step)
	}

	res2, err := svc.Move(ctx, sessionInfo.ID, "right", false)
	if err != nil {
		t.Fatalf("Move right failed with error: %v", err)
	}
	if res2.Success {
		t.Error("Expected failure pushing the crate into a wall")
	}
	if res2.AttemptedTo == nil || res2.AttemptedTo.Occupant != engine.KindCrate || res2.AttemptedTo.OutOfBounds {
		t.Errorf("Expected AttemptedTo naming the crate, got %+v", res2.AttemptedTo)
	}
}

func TestGameService_Undo(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	// Undo before any move is a no-op
	res, err := svc.Undo(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if res.Undone {
		t.Error("Undo with no history should report undone=false")
	}

	start := res.Snapshot.PlayerPos

	if _, err := svc.Move(ctx, sessionInfo.ID, "down", false); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	res, err = svc.Undo(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if !res.Undone {
		t.Error("expected undo to succeed after a move")
	}
	if res.Snapshot.PlayerPos != start {
		t.Errorf("player at %v after undo, want %v", res.Snapshot.PlayerPos, start)
	}
	if res.UndoDepth != 0 {
		t.Errorf("undo depth = %d after undo, want 0", res.UndoDepth)
	}

	if _, err := svc.Undo(ctx, "nonexistent"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	tests := []struct {
		name      string
		sessionID string
		moves     []string
		reset     bool
		wantErr   bool
	}{
		{
			name:      "valid bulk moves",
			sessionID: sessionInfo.ID,
			moves:     []string{"down", "down", "up", "up"},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "bulk moves with reset",
			sessionID: sessionInfo.ID,
			moves:     []string{"right", "right"},
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "empty moves",
			sessionID: sessionInfo.ID,
			moves:     []string{},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			moves:     []string{"up"},
			reset:     false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BulkMove(ctx, tt.sessionID, tt.moves, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("BulkMove() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result != nil {
				if result.RequestedMoves != len(tt.moves) {
					t.Errorf("BulkMove() RequestedMoves = %v, want %v", result.RequestedMoves, len(tt.moves))
				}
			}
		})
	}

	// Diagnostics: steps, stop reason, attempted target
	_, _ = svc.Reset(ctx, sessionInfo.ID)
	// From (1,1): up to (1,0), then up again leaves the grid.
	res, err := svc.BulkMove(ctx, sessionInfo.ID, []string{"up", "up", "down"}, false)
	if err != nil {
		t.Fatalf("BulkMove diagnostics failed with error: %v", err)
	}
	if res.MovesExecuted != 1 {
		t.Errorf("Expected 1 executed move, got %d", res.MovesExecuted)
	}
	if len(res.Steps) != 1 {
		t.Errorf("Expected 1 step record, got %d", len(res.Steps))
	}
	if res.StoppedOnMove != 2 {
		t.Errorf("StoppedOnMove = %d, want 2", res.StoppedOnMove)
	}
	if res.StopReasonCode != "blocked_boundary" {
		t.Errorf("StopReasonCode = %q, want blocked_boundary", res.StopReasonCode)
	}
	if res.AttemptedTo == nil || !res.AttemptedTo.OutOfBounds {
		t.Errorf("Expected out-of-bounds AttemptedTo, got %+v", res.AttemptedTo)
	}

	// Invalid direction stops the run
	res, err = svc.BulkMove(ctx, sessionInfo.ID, []string{"down", "sideways"}, true)
	if err != nil {
		t.Fatalf("BulkMove failed with error: %v", err)
	}
	if res.StopReasonCode != "invalid_direction" || res.MovesExecuted != 1 {
		t.Errorf("invalid direction: code=%q executed=%d", res.StopReasonCode, res.MovesExecuted)
	}

	// Truncation at the bulk move limit
	long := make([]string, engine.MaxBulkMoves+10)
	for i := range long {
		if i%2 == 0 {
			long[i] = "down"
		} else {
			long[i] = "up"
		}
	}
	res, err = svc.BulkMove(ctx, sessionInfo.ID, long, true)
	if err != nil {
		t.Fatalf("BulkMove failed with error: %v", err)
	}
	if !res.Truncated || res.Limit != engine.MaxBulkMoves {
		t.Errorf("Expected truncation at %d, got truncated=%v limit=%d",
			engine.MaxBulkMoves, res.Truncated, res.Limit)
	}
	if res.MovesExecuted != engine.MaxBulkMoves {
		t.Errorf("MovesExecuted = %d, want %d", res.MovesExecuted, engine.MaxBulkMoves)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	// 5 moves: down, up repeated
	for i := 0; i < 5; i++ {
		dir := "down"
		if i%2 == 1 {
			dir = "up"
		}
		if _, err := svc.Move(ctx, sessionInfo.ID, dir, false); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		wantCount int
		wantPages int
		firstSeq  int
	}{
		{
			name:      "default options newest first",
			opts:      service.HistoryOptions{},
			wantCount: 5,
			wantPages: 1,
			firstSeq:  5,
		},
		{
			name:      "ascending order",
			opts:      service.HistoryOptions{Order: "asc"},
			wantCount: 5,
			wantPages: 1,
			firstSeq:  1,
		},
		{
			name:      "small pages",
			opts:      service.HistoryOptions{Limit: 2, Order: "asc"},
			wantCount: 2,
			wantPages: 3,
			firstSeq:  1,
		},
		{
			name:      "second page ascending",
			opts:      service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"},
			wantCount: 2,
			wantPages: 3,
			firstSeq:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetMoveHistory(ctx, sessionInfo.ID, tt.opts)
			if err != nil {
				t.Fatalf("GetMoveHistory() error = %v", err)
			}
			if len(resp.Actions) != tt.wantCount {
				t.Errorf("got %d actions, want %d", len(resp.Actions), tt.wantCount)
			}
			if resp.TotalPages != tt.wantPages {
				t.Errorf("total pages = %d, want %d", resp.TotalPages, tt.wantPages)
			}
			if len(resp.Actions) > 0 && resp.Actions[0].Seq != tt.firstSeq {
				t.Errorf("first seq = %d, want %d", resp.Actions[0].Seq, tt.firstSeq)
			}
			if resp.TotalActions != 5 {
				t.Errorf("total actions = %d, want 5", resp.TotalActions)
			}
		})
	}
}

func TestGameService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	got, err := svc.GetSession(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.ID != sessionInfo.ID {
		t.Errorf("GetSession() id = %q, want %q", got.ID, sessionInfo.ID)
	}

	list, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListSessions() returned %d sessions, want 1", len(list))
	}

	if err := svc.DeleteSession(ctx, sessionInfo.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, sessionInfo.ID); err == nil {
		t.Error("expected error getting a deleted session")
	}
}

func TestGameService_CreateSessionErrorNamesConfigs(t *testing.T) {
	ctx := context.Background()
	configs := NewMockConfigManager()
	svc := service.NewGameService(NewMockSessionManager(), configs)

	_, err := svc.CreateSession(ctx, "bogus")
	if err == nil {
		t.Fatal("expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the missing config: %v", err)
	}
}
