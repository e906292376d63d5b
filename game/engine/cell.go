package engine

// MapCell is one grid square. It owns, per layer, an ordered stack of the
// objects present at that square; "top" is the most recently placed. The
// push algorithm assumes at most one push-relevant solid object per cell.
type MapCell struct {
	layers [numLayers][]GameObject
}

// View returns the top object of a layer without removing it, or nil.
func (c *MapCell) View(layer Layer) GameObject {
	stack := c.layers[layer]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Take removes and returns the top object of a layer, or nil if empty.
func (c *MapCell) Take(layer Layer) GameObject {
	stack := c.layers[layer]
	if len(stack) == 0 {
		return nil
	}
	object := stack[len(stack)-1]
	c.layers[layer] = stack[:len(stack)-1]
	return object
}

// TakeID removes and returns the object with the given id anywhere in the
// layer's stack, or nil if absent. Ids are unique within a layer stack, so
// at most one object matches.
func (c *MapCell) TakeID(layer Layer, id ObjectID) GameObject {
	stack := c.layers[layer]
	for i, object := range stack {
		if object.ID() == id {
			c.layers[layer] = append(stack[:i], stack[i+1:]...)
			return object
		}
	}
	return nil
}

// Delete takes the top object of a layer into a deletion delta. It reports
// whether anything was deleted.
func (c *MapCell) Delete(layer Layer, frame *DeltaFrame) bool {
	object := c.Take(layer)
	if object == nil {
		return false
	}
	frame.Push(NewDeletionDelta(object))
	return true
}

// DeleteID takes the object with the given id into a deletion delta.
func (c *MapCell) DeleteID(layer Layer, id ObjectID, frame *DeltaFrame) bool {
	object := c.TakeID(layer, id)
	if object == nil {
		return false
	}
	frame.Push(NewDeletionDelta(object))
	return true
}

// Put records a creation delta for the object, then pushes it onto its
// layer's stack.
func (c *MapCell) Put(object GameObject, frame *DeltaFrame) {
	frame.Push(&CreationDelta{
		id:    object.ID(),
		pos:   object.Pos(),
		layer: object.Layer(),
	})
	c.PutQuiet(object)
}

// PutQuiet pushes the object with no delta recorded. Used for initial world
// setup and for delta reversion, which must not generate new history.
func (c *MapCell) PutQuiet(object GameObject) {
	c.layers[object.Layer()] = append(c.layers[object.Layer()], object)
}

// appendViews appends the cell's contents in draw order: floor under
// player under solid.
func (c *MapCell) appendViews(views []ObjectView) []ObjectView {
	for layer := Layer(0); layer < numLayers; layer++ {
		for _, object := range c.layers[layer] {
			views = append(views, object.View())
		}
	}
	return views
}
