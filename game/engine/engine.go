package engine

import (
	"fmt"
	"time"
)

// tick phases of the animation gate.
const (
	PhaseReady = "ready"
	PhaseWait  = "wait"
)

// ActionRecord is one entry in the engine's action history: a move attempt
// or an undo, with the player's position before and after.
type ActionRecord struct {
	Action    string   `json:"action"`
	From      Position `json:"from"`
	To        Position `json:"to"`
	Pushed    int      `json:"pushed,omitempty"`
	Success   bool     `json:"success"`
	Timestamp int64    `json:"timestamp"`
	Seq       int      `json:"seq"`
}

// WorldSnapshot is the read-only state projection handed to transports and
// renderers. It exposes no mutation.
type WorldSnapshot struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Mesh       int          `json:"mesh"`
	Objects    []ObjectView `json:"objects"`
	PlayerPos  Position     `json:"player_pos"`
	PlayerID   ObjectID     `json:"player_id"`
	UndoDepth  int          `json:"undo_depth"`
	Phase      string       `json:"phase"`
	WaitFrames int          `json:"wait_frames"`
	TotalSteps int          `json:"total_steps"`
	Message    string       `json:"message"`
	ConfigName string       `json:"config_name"`
	Rows       []string     `json:"rows,omitempty"`
}

// TickInput is one logic tick's worth of intent from the input collaborator:
// the latest buffered direction (empty for none) and whether undo was
// requested. At most one of {move attempt, undo pop} happens per tick.
type TickInput struct {
	Direction string `json:"direction,omitempty"`
	Undo      bool   `json:"undo,omitempty"`
}

// TickResult reports what a tick did, with enough phase state for the
// caller to manage input buffering and cooldowns.
type TickResult struct {
	Moved        bool   `json:"moved"`
	Undone       bool   `json:"undone"`
	Phase        string `json:"phase"`
	WaitFrames   int    `json:"wait_frames"`
	UndoCooldown int    `json:"undo_cooldown"`
}

// Engine provides the main interface for game operations.
type Engine interface {
	// Simulation
	Step(direction string) bool
	CanStep(direction string) bool
	PossibleMoves() []string
	Undo() bool
	Tick(input TickInput) TickResult
	Reset()

	// State
	Snapshot() *WorldSnapshot
	PlayerPosition() Position
	UndoDepth() int

	// Configuration
	Config() *WorldConfig

	// History
	History() []ActionRecord
	LastAction() *ActionRecord
}

// GameEngine implements the Engine interface.
type GameEngine struct {
	config *WorldConfig
	ids    *IDAllocator
	world  *WorldMap
	undo   *UndoStack

	phase        string
	waitLeft     int
	undoCooldown int

	message string

	// History is cumulative across resets; totalActions numbers entries.
	history      []ActionRecord
	totalActions int
}

// NewEngine creates a new game engine with the provided configuration.
func NewEngine(config *WorldConfig) (*GameEngine, error) {
	if err := ValidateWorldConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	e.initWorld()
	return e, nil
}

// NewEngineWithDefaults creates a new game engine on the reference world.
func NewEngineWithDefaults() *GameEngine {
	e := &GameEngine{config: DefaultWorldConfig()}
	e.initWorld()
	return e
}

func (e *GameEngine) initWorld() {
	e.ids = NewIDAllocator()
	e.world = NewWorldFromConfig(e.config, e.ids)
	e.undo = NewUndoStack(e.config.MaxUndoDepth)
	e.phase = PhaseReady
	e.waitLeft = 0
	e.undoCooldown = 0
	e.message = e.config.Messages.Welcome
}

// Reset rebuilds the world, discarding all undo history. The cumulative
// action history and its numbering survive resets.
func (e *GameEngine) Reset() {
	e.initWorld()
}

// Step attempts one move with no animation gating: the direct, service-facing
// operation. A successful step produces exactly one undo frame; a failed
// step mutates nothing and produces none.
func (e *GameEngine) Step(direction string) bool {
	dx, dy, ok := DirectionDelta(direction)
	if !ok {
		return false
	}

	from := e.world.PlayerPos()
	frame := NewDeltaFrame()
	success := e.world.MoveSolid(dx, dy, frame)

	pushed := 0
	if success {
		// One motion delta per moved object; the player accounts for one.
		pushed = frame.Len() - 1
		if !frame.Trivial() {
			e.undo.Push(frame)
		}
		e.message = e.moveMessage(pushed)
	} else {
		e.message = e.blockedMessage(from, dx, dy)
	}

	e.record(ActionRecord{
		Action:  direction,
		From:    from,
		To:      e.world.PlayerPos(),
		Pushed:  pushed,
		Success: success,
	})

	return success
}

// CanStep reports whether a move in the given direction would succeed,
// without mutating anything.
func (e *GameEngine) CanStep(direction string) bool {
	dx, dy, ok := DirectionDelta(direction)
	if !ok {
		return false
	}
	return e.world.CanMoveSolid(dx, dy)
}

// PossibleMoves returns the directions the player could currently move.
func (e *GameEngine) PossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanStep(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// Undo reverts the most recent step. Undoing with empty history is a no-op
// and reports false.
func (e *GameEngine) Undo() bool {
	from := e.world.PlayerPos()
	undone := e.undo.Pop(e.world)

	if undone {
		e.message = e.config.Messages.Undone
	} else {
		e.message = e.config.Messages.NothingToUndo
	}

	e.record(ActionRecord{
		Action:  "undo",
		From:    from,
		To:      e.world.PlayerPos(),
		Success: undone,
	})

	return undone
}

// Tick advances the simulation by one logic tick: at most one of {attempted
// move, undo pop}, gated by the animation window and the undo cooldown.
// Undo takes priority when requested and is honored even mid-animation;
// moves only fire from the ready phase.
func (e *GameEngine) Tick(input TickInput) TickResult {
	var result TickResult

	switch e.phase {
	case PhaseWait:
		if e.waitLeft > 0 {
			e.waitLeft--
		} else {
			e.phase = PhaseReady
		}
	case PhaseReady:
		if !input.Undo && input.Direction != "" {
			if e.Step(input.Direction) {
				result.Moved = true
				e.phase = PhaseWait
				e.waitLeft = e.config.AnimationLength
				e.undoCooldown = 0
			}
		}
	}

	if input.Undo && e.undoCooldown == 0 {
		result.Undone = e.Undo()
		e.undoCooldown = e.config.UndoCooldown
	}

	if e.undoCooldown > 0 {
		e.undoCooldown--
	}

	result.Phase = e.phase
	result.WaitFrames = e.waitLeft
	result.UndoCooldown = e.undoCooldown
	return result
}

// Snapshot returns the current drawable state.
func (e *GameEngine) Snapshot() *WorldSnapshot {
	snap := &WorldSnapshot{
		Width:      e.world.Width(),
		Height:     e.world.Height(),
		Mesh:       Mesh,
		Objects:    e.world.Snapshot(),
		PlayerPos:  e.world.PlayerPos(),
		PlayerID:   e.world.PlayerID(),
		UndoDepth:  e.undo.Len(),
		Phase:      e.phase,
		WaitFrames: e.waitLeft,
		TotalSteps: e.totalActions,
		Message:    e.message,
		ConfigName: e.config.Name,
	}
	snap.Rows = RenderRows(snap)
	return snap
}

// PlayerPosition returns the player's current grid position.
func (e *GameEngine) PlayerPosition() Position {
	return e.world.PlayerPos()
}

// UndoDepth returns the number of frames available to undo.
func (e *GameEngine) UndoDepth() int {
	return e.undo.Len()
}

// Config returns the engine's configuration.
func (e *GameEngine) Config() *WorldConfig {
	return e.config
}

// History returns the cumulative action history.
func (e *GameEngine) History() []ActionRecord {
	return e.history
}

// LastAction returns the most recent history entry, or nil.
func (e *GameEngine) LastAction() *ActionRecord {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// BulkStep executes multiple steps in sequence, returning per-step success.
// It stops early once a step fails, leaving the grid exactly as the last
// successful step left it.
func (e *GameEngine) BulkStep(directions []string) []bool {
	results := make([]bool, 0, len(directions))
	for _, direction := range directions {
		success := e.Step(direction)
		results = append(results, success)
		if !success {
			break
		}
	}
	return results
}

func (e *GameEngine) record(entry ActionRecord) {
	entry.Timestamp = time.Now().Unix()
	e.totalActions++
	entry.Seq = e.totalActions
	e.history = append(e.history, entry)
}

func (e *GameEngine) moveMessage(pushed int) string {
	if pushed > 0 && e.config.Messages.Pushed != "" {
		return fmt.Sprintf(e.config.Messages.Pushed, pushed)
	}
	if e.config.Messages.Moved != "" {
		return e.config.Messages.Moved
	}
	return e.message
}

func (e *GameEngine) blockedMessage(from Position, dx, dy int) string {
	target := from.Translate(dx, dy)
	if e.world.Invalid(target.X, target.Y) && e.config.Messages.OutOfBounds != "" {
		return e.config.Messages.OutOfBounds
	}
	if e.config.Messages.Blocked != "" {
		return e.config.Messages.Blocked
	}
	return e.message
}
