package engine

// Delta is a reversible record of exactly one grid mutation. Deltas are
// created automatically as the world mutates, grouped into frames, and
// reverted when the player undoes.
type Delta interface {
	Revert(m *WorldMap)
}

// MotionDelta records one object's displacement and its resulting
// (post-move) position.
type MotionDelta struct {
	id    ObjectID
	pos   Position
	layer Layer
	dx    int
	dy    int
}

// Revert locates the object by id at its current position, applies the
// inverse displacement, and reinserts it quietly. The inverse shift is
// logged into a throwaway frame: reverting a reversion is not supported.
func (d *MotionDelta) Revert(m *WorldMap) {
	redo := NewDeltaFrame()
	object := m.TakeID(d.pos.X, d.pos.Y, d.layer, d.id)
	if object == nil {
		panic("engine: motion delta revert: object missing from recorded position")
	}
	object.ShiftPos(-d.dx, -d.dy, redo)
	m.PutQuiet(object)
}

// CreationDelta records an object's id, position, and layer at creation
// time.
type CreationDelta struct {
	id    ObjectID
	pos   Position
	layer Layer
}

// Revert removes whatever object currently tops the recorded position and
// layer. It does not verify the occupant is the recorded object; if another
// object has since taken the slot, that one is removed instead.
func (d *CreationDelta) Revert(m *WorldMap) {
	m.Take(d.pos.X, d.pos.Y, d.layer)
}

// DeletionDelta exclusively owns the removed object until reverted.
type DeletionDelta struct {
	object GameObject
}

// NewDeletionDelta wraps a removed object.
func NewDeletionDelta(object GameObject) *DeletionDelta {
	return &DeletionDelta{object: object}
}

// Revert reinserts the owned object at its stored position, quietly.
func (d *DeletionDelta) Revert(m *WorldMap) {
	if d.object != nil {
		m.PutQuiet(d.object)
		d.object = nil
	}
}

// DeltaFrame is the ordered sequence of deltas produced during one logic
// step. A frame is trivial iff it recorded nothing.
type DeltaFrame struct {
	deltas []Delta
}

// NewDeltaFrame returns an empty frame.
func NewDeltaFrame() *DeltaFrame {
	return &DeltaFrame{}
}

// Push appends a delta to the frame.
func (f *DeltaFrame) Push(delta Delta) {
	f.deltas = append(f.deltas, delta)
}

// Trivial reports whether the frame recorded no deltas.
func (f *DeltaFrame) Trivial() bool {
	return len(f.deltas) == 0
}

// Len returns the number of recorded deltas.
func (f *DeltaFrame) Len() int {
	return len(f.deltas)
}

// Revert applies each contained delta's revert against the map, in
// insertion order. Current delta producers only ever emit independent
// deltas per frame, so ordering does not matter yet; revisit if a delta
// kind with interdependent positions is added.
func (f *DeltaFrame) Revert(m *WorldMap) {
	for _, delta := range f.deltas {
		delta.Revert(m)
	}
}

// UndoStack is a bounded, most-recent-last stack of delta frames. Pushing
// past capacity discards the oldest frame.
type UndoStack struct {
	frames   []*DeltaFrame
	maxDepth int
}

// NewUndoStack returns an empty stack holding at most maxDepth frames.
func NewUndoStack(maxDepth int) *UndoStack {
	if maxDepth < 1 {
		panic("engine: undo stack depth must be positive")
	}
	return &UndoStack{
		frames:   make([]*DeltaFrame, 0, maxDepth),
		maxDepth: maxDepth,
	}
}

// Push appends a frame, dropping the oldest one once capacity is reached.
func (s *UndoStack) Push(frame *DeltaFrame) {
	if len(s.frames) == s.maxDepth {
		copy(s.frames, s.frames[1:])
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, frame)
}

// Pop reverts and discards the most recent frame. Popping an empty stack is
// a no-op; the return value reports whether anything was reverted.
func (s *UndoStack) Pop(m *WorldMap) bool {
	if len(s.frames) == 0 {
		return false
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	frame.Revert(m)
	return true
}

// Len returns the number of stored frames.
func (s *UndoStack) Len() int {
	return len(s.frames)
}
