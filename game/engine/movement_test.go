package engine

import "testing"

// buildWorld places a player and the given objects on a fresh grid.
func buildWorld(t *testing.T, width, height, px, py int, place func(ids *IDAllocator, world *WorldMap)) *WorldMap {
	t.Helper()
	ids := NewIDAllocator()
	world := NewWorldMap(width, height)
	player := NewPlayer(ids, px, py)
	world.PutQuiet(player)
	world.AttachPlayer(player.ID())
	if place != nil {
		place(ids, world)
	}
	return world
}

// solidGrid maps every solid occupant's id to its position for
// before/after comparisons.
func solidGrid(world *WorldMap) map[ObjectID]Position {
	grid := make(map[ObjectID]Position)
	for _, view := range world.Snapshot() {
		grid[view.ID] = view.Position
	}
	return grid
}

func sameGrid(a, b map[ObjectID]Position) bool {
	if len(a) != len(b) {
		return false
	}
	for id, pos := range a {
		if b[id] != pos {
			return false
		}
	}
	return true
}

func TestMoveSolidIntoOpenSpace(t *testing.T) {
	world := buildWorld(t, 5, 5, 2, 2, nil)

	frame := NewDeltaFrame()
	if !world.MoveSolid(1, 0, frame) {
		t.Fatal("expected move into open space to succeed")
	}
	if world.PlayerPos() != (Position{X: 3, Y: 2}) {
		t.Errorf("player at %v, want (3,2)", world.PlayerPos())
	}
	if frame.Len() != 1 {
		t.Errorf("expected one motion recorded, got %d", frame.Len())
	}
}

func TestMoveSolidOffGridFails(t *testing.T) {
	world := buildWorld(t, 5, 5, 0, 0, nil)

	frame := NewDeltaFrame()
	if world.MoveSolid(-1, 0, frame) {
		t.Fatal("expected move off the grid to fail")
	}
	if world.PlayerPos() != (Position{X: 0, Y: 0}) {
		t.Errorf("player moved to %v on a failed move", world.PlayerPos())
	}
	if !frame.Trivial() {
		t.Error("failed move should record nothing")
	}
}

func TestMoveSolidPushesChain(t *testing.T) {
	tests := []struct {
		name   string
		crates int // contiguous crates to the player's right
		want   bool
	}{
		{"single crate", 1, true},
		{"three crates", 3, true},
		{"chain to the edge", 7, false}, // last crate sits on column 9
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var crates []*Block
			world := buildWorld(t, 10, 10, 2, 5, func(ids *IDAllocator, world *WorldMap) {
				for i := 0; i < tt.crates; i++ {
					crate := NewCrate(ids, 3+i, 5)
					world.PutQuiet(crate)
					crates = append(crates, crate)
				}
			})

			before := solidGrid(world)
			frame := NewDeltaFrame()
			got := world.MoveSolid(1, 0, frame)
			if got != tt.want {
				t.Fatalf("MoveSolid = %v, want %v", got, tt.want)
			}

			if !tt.want {
				// Nothing moves on failure, not even the free prefix.
				if !sameGrid(before, solidGrid(world)) {
					t.Error("failed push must leave the grid untouched")
				}
				return
			}

			if world.PlayerPos() != (Position{X: 3, Y: 5}) {
				t.Errorf("player at %v, want (3,5)", world.PlayerPos())
			}
			for i, crate := range crates {
				want := Position{X: 4 + i, Y: 5}
				if crate.Pos() != want {
					t.Errorf("crate %d at %v, want %v", i, crate.Pos(), want)
				}
			}
			// One motion per moved object: player plus every crate.
			if frame.Len() != tt.crates+1 {
				t.Errorf("frame recorded %d motions, want %d", frame.Len(), tt.crates+1)
			}
		})
	}
}

func TestMoveSolidBlockedByWall(t *testing.T) {
	world := buildWorld(t, 10, 10, 2, 5, func(ids *IDAllocator, world *WorldMap) {
		world.PutQuiet(NewCrate(ids, 3, 5))
		world.PutQuiet(NewWall(ids, 4, 5))
	})

	before := solidGrid(world)
	frame := NewDeltaFrame()
	if world.MoveSolid(1, 0, frame) {
		t.Fatal("expected push into a wall to fail")
	}
	if !sameGrid(before, solidGrid(world)) {
		t.Error("failed push must leave the grid untouched")
	}
	if !frame.Trivial() {
		t.Error("failed push should record nothing")
	}
}

func TestMoveSolidWallNeverMoves(t *testing.T) {
	world := buildWorld(t, 5, 5, 1, 1, func(ids *IDAllocator, world *WorldMap) {
		world.PutQuiet(NewWall(ids, 2, 1))
	})

	frame := NewDeltaFrame()
	if world.MoveSolid(1, 0, frame) {
		t.Error("pushing directly against a wall should fail")
	}
}

func TestMoveSolidUndoRestoresChain(t *testing.T) {
	var crate *Block
	world := buildWorld(t, 10, 10, 2, 5, func(ids *IDAllocator, world *WorldMap) {
		crate = NewCrate(ids, 3, 5)
		world.PutQuiet(crate)
	})

	frame := NewDeltaFrame()
	if !world.MoveSolid(1, 0, frame) {
		t.Fatal("expected push to succeed")
	}

	frame.Revert(world)

	if world.PlayerPos() != (Position{X: 2, Y: 5}) {
		t.Errorf("player at %v after revert, want (2,5)", world.PlayerPos())
	}
	if crate.Pos() != (Position{X: 3, Y: 5}) {
		t.Errorf("crate at %v after revert, want (3,5)", crate.Pos())
	}
	if got := world.View(3, 5, LayerSolid); got == nil || got.ID() != crate.ID() {
		t.Error("crate not stored at (3,5) after revert")
	}
}

func TestDefaultWorldWalkPastWall(t *testing.T) {
	// Player starts at (3,3); the wall sits at (5,5), one row below the
	// walking line, so four steps right cross columns 4..7 unhindered.
	e := NewEngineWithDefaults()

	for i := 0; i < 4; i++ {
		if !e.Step("right") {
			t.Fatalf("step %d right failed", i+1)
		}
	}
	if e.PlayerPosition() != (Position{X: 7, Y: 3}) {
		t.Errorf("player at %v, want (7,3)", e.PlayerPosition())
	}
	if got := FindKind(e.Snapshot(), KindWall); len(got) != 1 || got[0].Position != (Position{X: 5, Y: 5}) {
		t.Errorf("wall views = %v, want one at (5,5)", got)
	}
}

func TestDefaultWorldCratePushToEdge(t *testing.T) {
	// Walk the player from (3,3) to (7,4), push the crate at (8,4) to the
	// east edge, then confirm the outward push fails without side effects.
	e := NewEngineWithDefaults()

	path := []string{"down", "right", "right", "right", "right"}
	for i, dir := range path {
		if !e.Step(dir) {
			t.Fatalf("step %d (%s) failed", i+1, dir)
		}
	}
	if e.PlayerPosition() != (Position{X: 7, Y: 4}) {
		t.Fatalf("player at %v, want (7,4)", e.PlayerPosition())
	}

	if !e.Step("right") {
		t.Fatal("expected push of the crate to succeed")
	}
	crates := FindKind(e.Snapshot(), KindCrate)
	if len(crates) != 1 || crates[0].Position != (Position{X: 9, Y: 4}) {
		t.Fatalf("crate views = %v, want one at (9,4)", crates)
	}

	before := e.Snapshot()
	if e.Step("right") {
		t.Fatal("push off the grid should fail")
	}
	after := e.Snapshot()
	if before.PlayerPos != after.PlayerPos {
		t.Error("failed push moved the player")
	}
	if got := FindKind(after, KindCrate); got[0].Position != (Position{X: 9, Y: 4}) {
		t.Error("failed push moved the crate")
	}

	if !e.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if e.PlayerPosition() != (Position{X: 7, Y: 4}) {
		t.Errorf("player at %v after undo, want (7,4)", e.PlayerPosition())
	}
	if got := FindKind(e.Snapshot(), KindCrate); got[0].Position != (Position{X: 8, Y: 4}) {
		t.Errorf("crate at %v after undo, want (8,4)", got[0].Position)
	}
}

func TestCanMoveSolidMatchesMoveSolid(t *testing.T) {
	world := buildWorld(t, 10, 10, 2, 5, func(ids *IDAllocator, world *WorldMap) {
		world.PutQuiet(NewCrate(ids, 3, 5))
		world.PutQuiet(NewWall(ids, 4, 5))
	})

	for _, tc := range []struct {
		dx, dy int
		want   bool
	}{
		{1, 0, false},
		{-1, 0, true},
		{0, 1, true},
		{0, -1, true},
	} {
		if got := world.CanMoveSolid(tc.dx, tc.dy); got != tc.want {
			t.Errorf("CanMoveSolid(%d,%d) = %v, want %v", tc.dx, tc.dy, got, tc.want)
		}
	}
}
