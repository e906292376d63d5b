package engine

// layout characters used when rendering snapshots back to text.
const (
	charFloor  = '.'
	charWall   = '#'
	charCrate  = 'C'
	charPlayer = '@'
)

// RenderRows renders a snapshot as layout-style text rows, one character
// per cell. When several objects share a cell, the topmost layer wins.
func RenderRows(snap *WorldSnapshot) []string {
	grid := make([][]rune, snap.Height)
	for y := range grid {
		grid[y] = make([]rune, snap.Width)
		for x := range grid[y] {
			grid[y][x] = charFloor
		}
	}

	// Snapshot order is already floor→player→solid per cell, so later
	// writes correctly overdraw earlier ones.
	for _, view := range snap.Objects {
		pos := view.Position
		if pos.Y < 0 || pos.Y >= snap.Height || pos.X < 0 || pos.X >= snap.Width {
			continue
		}
		switch view.Kind {
		case KindWall:
			grid[pos.Y][pos.X] = charWall
		case KindCrate:
			grid[pos.Y][pos.X] = charCrate
		case KindPlayer:
			grid[pos.Y][pos.X] = charPlayer
		}
	}

	rows := make([]string, snap.Height)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return rows
}

// CountKind counts the snapshot objects of the given kind.
func CountKind(snap *WorldSnapshot, kind string) int {
	count := 0
	for _, view := range snap.Objects {
		if view.Kind == kind {
			count++
		}
	}
	return count
}

// FindKind returns the views of every object of the given kind.
func FindKind(snap *WorldSnapshot, kind string) []ObjectView {
	var found []ObjectView
	for _, view := range snap.Objects {
		if view.Kind == kind {
			found = append(found, view)
		}
	}
	return found
}

// ManhattanDistance calculates the Manhattan distance between two positions.
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
