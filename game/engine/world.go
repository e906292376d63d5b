package engine

import "fmt"

// WorldMap is the full grid: width×height cells, exclusively owning every
// game object currently in play. The player is referenced by id, resolved
// through an id→position index maintained by the put/take paths, so no
// stored reference can ever dangle.
type WorldMap struct {
	width  int
	height int
	cells  [][]MapCell

	playerID ObjectID
	index    map[ObjectID]Position
}

// NewWorldMap returns an empty grid. Dimensions must be positive.
func NewWorldMap(width, height int) *WorldMap {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("engine: invalid world dimensions %dx%d", width, height))
	}
	cells := make([][]MapCell, width)
	for x := range cells {
		cells[x] = make([]MapCell, height)
	}
	return &WorldMap{
		width:  width,
		height: height,
		cells:  cells,
		index:  make(map[ObjectID]Position),
	}
}

// Width returns the number of columns.
func (w *WorldMap) Width() int { return w.width }

// Height returns the number of rows.
func (w *WorldMap) Height() int { return w.height }

// Invalid reports whether (x, y) lies outside the grid. It is the first
// check of every push-resolution probe.
func (w *WorldMap) Invalid(x, y int) bool {
	return x < 0 || x >= w.width || y < 0 || y >= w.height
}

// AttachPlayer registers the player id used to seed push resolution. The
// player object must already be placed in the grid.
func (w *WorldMap) AttachPlayer(id ObjectID) {
	if _, ok := w.index[id]; !ok {
		panic("engine: attaching player that is not in the grid")
	}
	w.playerID = id
}

// PlayerID returns the id of the player object.
func (w *WorldMap) PlayerID() ObjectID { return w.playerID }

// PlayerPos returns the player's current position. The player is never
// removed from the grid during normal play, so absence is fatal.
func (w *WorldMap) PlayerPos() Position {
	pos, ok := w.index[w.playerID]
	if !ok {
		panic("engine: world has no player")
	}
	return pos
}

// Locate returns the position of the object with the given id, if present.
func (w *WorldMap) Locate(id ObjectID) (Position, bool) {
	pos, ok := w.index[id]
	return pos, ok
}

// View returns the top object at (x, y) on the given layer without removing
// it. Out-of-bounds coordinates read as absent.
func (w *WorldMap) View(x, y int, layer Layer) GameObject {
	if w.Invalid(x, y) {
		return nil
	}
	return w.cells[x][y].View(layer)
}

// Take removes and returns the top object at (x, y) on the given layer.
func (w *WorldMap) Take(x, y int, layer Layer) GameObject {
	if w.Invalid(x, y) {
		return nil
	}
	object := w.cells[x][y].Take(layer)
	if object != nil {
		delete(w.index, object.ID())
	}
	return object
}

// TakeID removes and returns the object with the given id at (x, y).
func (w *WorldMap) TakeID(x, y int, layer Layer, id ObjectID) GameObject {
	if w.Invalid(x, y) {
		return nil
	}
	object := w.cells[x][y].TakeID(layer, id)
	if object != nil {
		delete(w.index, object.ID())
	}
	return object
}

// Delete removes the top object at (x, y) into a deletion delta on frame.
func (w *WorldMap) Delete(x, y int, layer Layer, frame *DeltaFrame) bool {
	object := w.Take(x, y, layer)
	if object == nil {
		return false
	}
	frame.Push(NewDeletionDelta(object))
	return true
}

// DeleteID removes the object with the given id at (x, y) into a deletion
// delta on frame.
func (w *WorldMap) DeleteID(x, y int, layer Layer, id ObjectID, frame *DeltaFrame) bool {
	object := w.TakeID(x, y, layer, id)
	if object == nil {
		return false
	}
	frame.Push(NewDeletionDelta(object))
	return true
}

// Put places the object at its own position, recording a creation delta.
// Placing an object out of bounds can never be a legitimate runtime
// occurrence, so it aborts.
func (w *WorldMap) Put(object GameObject, frame *DeltaFrame) {
	pos := object.Pos()
	if w.Invalid(pos.X, pos.Y) {
		panic(fmt.Sprintf("engine: object %d placed out of bounds at (%d,%d)", object.ID(), pos.X, pos.Y))
	}
	w.indexObject(object)
	w.cells[pos.X][pos.Y].Put(object, frame)
}

// PutQuiet places the object with no delta recorded.
func (w *WorldMap) PutQuiet(object GameObject) {
	pos := object.Pos()
	if w.Invalid(pos.X, pos.Y) {
		panic(fmt.Sprintf("engine: object %d placed out of bounds at (%d,%d)", object.ID(), pos.X, pos.Y))
	}
	w.indexObject(object)
	w.cells[pos.X][pos.Y].PutQuiet(object)
}

func (w *WorldMap) indexObject(object GameObject) {
	id := object.ID()
	if id == 0 {
		panic("engine: object with zero id")
	}
	if _, ok := w.index[id]; ok {
		panic(fmt.Sprintf("engine: duplicate object id %d", id))
	}
	w.index[id] = object.Pos()
}

// solidClosure computes the transitive set of solid objects that must move
// together for a (dx, dy) step seeded at the player. It mutates nothing and
// reports false if the chain runs off the grid or into a non-pushable
// object.
func (w *WorldMap) solidClosure(dx, dy int) (map[Position]ObjectID, bool) {
	// toMove is every position that will move if the push is legal; toCheck
	// is the subset still awaiting a probe of its destination cell.
	start := w.PlayerPos()
	toMove := map[Position]ObjectID{start: w.playerID}
	toCheck := []Position{start}

	for len(toCheck) > 0 {
		pos := toCheck[len(toCheck)-1]
		toCheck = toCheck[:len(toCheck)-1]
		next := pos.Translate(dx, dy)

		// Already part of the closure: its own destination is checked on
		// its turn. This also terminates self-referential pushes.
		if _, ok := toMove[next]; ok {
			continue
		}
		// Something is trying to move off the grid.
		if w.Invalid(next.X, next.Y) {
			return nil, false
		}
		occupant := w.View(next.X, next.Y, LayerSolid)
		if occupant == nil {
			continue
		}
		if !occupant.Pushable() {
			return nil, false
		}
		toMove[next] = occupant.ID()
		toCheck = append(toCheck, next)
	}

	return toMove, true
}

// CanMoveSolid reports whether a (dx, dy) step would succeed, without
// mutating anything.
func (w *WorldMap) CanMoveSolid(dx, dy int) bool {
	_, ok := w.solidClosure(dx, dy)
	return ok
}

// MoveSolid attempts to move the player (and anything transitively pushed)
// by one unit step (dx, dy), recording a motion delta per moved object into
// frame. The move is atomic: legality is fully established before any
// mutation, so either every object in the closure moves or none do.
func (w *WorldMap) MoveSolid(dx, dy int, frame *DeltaFrame) bool {
	toMove, ok := w.solidClosure(dx, dy)
	if !ok {
		return false
	}

	// The move is legal; commit. Removal and insertion are keyed by id and
	// position independently, so application order across the set is free.
	for pos, id := range toMove {
		object := w.TakeID(pos.X, pos.Y, LayerSolid, id)
		object.ShiftPos(dx, dy, frame)
		w.PutQuiet(object)
	}
	return true
}

// Snapshot returns every object's draw projection. Cells are visited in
// row-major order; within a cell, layers come out floor, player, solid.
func (w *WorldMap) Snapshot() []ObjectView {
	views := make([]ObjectView, 0, len(w.index))
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			views = w.cells[x][y].appendViews(views)
		}
	}
	return views
}

// ObjectCount returns the number of objects currently owned by the grid.
func (w *WorldMap) ObjectCount() int {
	return len(w.index)
}
