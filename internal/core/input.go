package core

// MoveKey identifies one of the four directional movement keys the engine
// understands. Raw key events are mapped to these by the platform layer.
type MoveKey int

const (
	KeyLeft MoveKey = iota
	KeyRight
	KeyUp
	KeyDown
	numMoveKeys
)

// String returns a human-readable name for the key.
func (k MoveKey) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// KeySet is the set of movement keys currently held down.
type KeySet uint8

// With returns the set with k added.
func (s KeySet) With(k MoveKey) KeySet {
	return s | 1<<uint(k)
}

// Without returns the set with k removed.
func (s KeySet) Without(k MoveKey) KeySet {
	return s &^ (1 << uint(k))
}

// Has returns true if k is held.
func (s KeySet) Has(k MoveKey) bool {
	return s&(1<<uint(k)) != 0
}

// Any returns true if at least one movement key is held.
func (s KeySet) Any() bool {
	return s != 0
}

// Dir returns the combined unit-step direction of the held keys.
// Opposing keys cancel out.
func (s KeySet) Dir() Vec2 {
	var d Vec2
	if s.Has(KeyLeft) {
		d.X--
	}
	if s.Has(KeyRight) {
		d.X++
	}
	if s.Has(KeyUp) {
		d.Y--
	}
	if s.Has(KeyDown) {
		d.Y++
	}
	return d
}

// FrameInput is the normalized input sample the engine consumes once per
// display frame. The platform layer builds it from raw terminal events;
// the engine never sees pointer or key events directly.
type FrameInput struct {
	// Now is the wall-clock time of this frame in seconds. Deltas between
	// consecutive frames drive the fixed-step accumulator.
	Now float64

	// Pointer is the pointer position in world coordinates, already
	// converted from screen cells by the platform.
	Pointer Vec2

	// PointerValid reports whether a pointer sample has been seen at all.
	// Until the first pointer event the shield holds its position.
	PointerValid bool

	// Held is the set of movement keys currently held down. When any key
	// is held it fully overrides the pointer for that tick.
	Held KeySet

	// ViewportW and ViewportH are the visible world dimensions.
	ViewportW, ViewportH float64
}
