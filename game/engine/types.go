package engine

import "fmt"

// Layer identifies the logical plane a game object lives on. An object's
// layer is fixed for its lifetime and selects which per-cell stack holds it.
type Layer int

const (
	LayerFloor Layer = iota
	LayerPlayer
	LayerSolid

	numLayers // always last: layer count
)

// String returns the JSON/wire name of the layer.
func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "floor"
	case LayerPlayer:
		return "player"
	case LayerSolid:
		return "solid"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

const (
	// Mesh is the pixel size of one grid cell. Renderers draw each object
	// as a Mesh×Mesh square at Mesh*position, origin at (0,0).
	Mesh = 40

	// DefaultMaxUndoDepth bounds the undo history when a config leaves it unset.
	DefaultMaxUndoDepth = 1000

	// DefaultAnimationLength is the number of wait ticks after a successful move.
	DefaultAnimationLength = 6

	// DefaultUndoCooldown is the number of ticks a held undo input is debounced.
	DefaultUndoCooldown = 6

	// Validation constants
	MinGridSize  = 2
	MaxGridSize  = 64
	MaxBulkMoves = 50
)

// ObjectID uniquely identifies a game object. IDs are monotonically
// assigned, never reused, and never zero.
type ObjectID uint64

// IDAllocator hands out object ids. Each world owns one allocator so id
// uniqueness is scoped to a construction context rather than the process.
type IDAllocator struct {
	last ObjectID
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh id. Wrapping back to zero would break the never-zero
// invariant and indicates billions of allocations, so it aborts.
func (a *IDAllocator) Next() ObjectID {
	a.last++
	if a.last == 0 {
		panic("engine: object id counter wrapped")
	}
	return a.last
}

// Position represents x,y grid coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate returns the position shifted by (dx, dy).
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Color is the visual tint of an object. It is irrelevant to game logic and
// carried only for the draw snapshot.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Object kinds as reported in draw snapshots.
const (
	KindPlayer = "player"
	KindCrate  = "crate"
	KindWall   = "wall"
)

// ObjectView is the read-only projection of one object, sufficient for
// rendering and for API payloads. It exposes no mutation.
type ObjectView struct {
	ID       ObjectID `json:"id"`
	Position Position `json:"position"`
	Layer    string   `json:"layer"`
	Kind     string   `json:"kind"`
	Pushable bool     `json:"pushable"`
	Color    Color    `json:"color"`
}

// DirectionDelta maps a direction name to its unit displacement.
func DirectionDelta(direction string) (dx, dy int, ok bool) {
	switch direction {
	case "up":
		return 0, -1, true
	case "down":
		return 0, 1, true
	case "left":
		return -1, 0, true
	case "right":
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// Directions lists the four legal move directions in a stable order.
var Directions = []string{"up", "down", "left", "right"}
