package engine

// GameObject is anything that lives in the world map: uniquely identified,
// positioned, belonging to exactly one layer, optionally pushable.
type GameObject interface {
	// ID is stable for the object's lifetime, never zero.
	ID() ObjectID
	// Pos is the object's current grid position.
	Pos() Position
	// Layer is constant for the object's lifetime.
	Layer() Layer
	// Pushable reports whether the object may be displaced by a push.
	Pushable() bool
	// ShiftPos applies the displacement and appends a MotionDelta describing
	// it to frame. No validation happens here; legality is the world's job.
	ShiftPos(dx, dy int, frame *DeltaFrame)
	// SetPos overwrites the position with no delta recorded. Used only when
	// relocating an object without semantic movement.
	SetPos(pos Position)
	// View returns the object's draw projection.
	View() ObjectView
}

// Player is the single player-controlled object. It occupies the solid
// layer and is itself pushable, so chained pushes resolve uniformly.
type Player struct {
	id    ObjectID
	pos   Position
	color Color
}

// NewPlayer constructs a player at (x, y) with a fresh id.
func NewPlayer(ids *IDAllocator, x, y int) *Player {
	return &Player{
		id:    ids.Next(),
		pos:   Position{X: x, Y: y},
		color: Color{R: 230, G: 240, B: 200},
	}
}

func (p *Player) ID() ObjectID   { return p.id }
func (p *Player) Pos() Position  { return p.pos }
func (p *Player) Layer() Layer   { return LayerSolid }
func (p *Player) Pushable() bool { return true }

func (p *Player) ShiftPos(dx, dy int, frame *DeltaFrame) {
	p.pos = p.pos.Translate(dx, dy)
	frame.Push(&MotionDelta{
		id:    p.id,
		pos:   p.pos,
		layer: p.Layer(),
		dx:    dx,
		dy:    dy,
	})
}

func (p *Player) SetPos(pos Position) { p.pos = pos }

func (p *Player) View() ObjectView {
	return ObjectView{
		ID:       p.id,
		Position: p.pos,
		Layer:    p.Layer().String(),
		Kind:     KindPlayer,
		Pushable: true,
		Color:    p.color,
	}
}

// Block is a solid-layer obstacle. Crates are pushable, walls are not.
type Block struct {
	id       ObjectID
	pos      Position
	pushable bool
	color    Color
}

// NewCrate constructs a pushable block at (x, y).
func NewCrate(ids *IDAllocator, x, y int) *Block {
	return &Block{
		id:       ids.Next(),
		pos:      Position{X: x, Y: y},
		pushable: true,
		color:    Color{R: 200, G: 180, B: 100},
	}
}

// NewWall constructs an immovable block at (x, y).
func NewWall(ids *IDAllocator, x, y int) *Block {
	return &Block{
		id:       ids.Next(),
		pos:      Position{X: x, Y: y},
		pushable: false,
		color:    Color{R: 80, G: 20, B: 50},
	}
}

func (b *Block) ID() ObjectID   { return b.id }
func (b *Block) Pos() Position  { return b.pos }
func (b *Block) Layer() Layer   { return LayerSolid }
func (b *Block) Pushable() bool { return b.pushable }

func (b *Block) ShiftPos(dx, dy int, frame *DeltaFrame) {
	b.pos = b.pos.Translate(dx, dy)
	frame.Push(&MotionDelta{
		id:    b.id,
		pos:   b.pos,
		layer: b.Layer(),
		dx:    dx,
		dy:    dy,
	})
}

func (b *Block) SetPos(pos Position) { b.pos = pos }

func (b *Block) View() ObjectView {
	kind := KindCrate
	if !b.pushable {
		kind = KindWall
	}
	return ObjectView{
		ID:       b.id,
		Position: b.pos,
		Layer:    b.Layer().String(),
		Kind:     kind,
		Pushable: b.pushable,
		Color:    b.color,
	}
}
