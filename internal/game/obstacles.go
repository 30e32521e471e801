package game

// ObstacleMap is the immutable set of impassable rectangles of an arena.
// It is built once per engine and shared read-only by movement, combat
// and respawn.
type ObstacleMap struct {
	rects []Rect
}

// NewObstacleMap copies rects so later changes by the caller cannot leak in.
func NewObstacleMap(rects []Rect) *ObstacleMap {
	cp := make([]Rect, len(rects))
	copy(cp, rects)
	return &ObstacleMap{rects: cp}
}

// Collides reports whether a circle at c with the given radius overlaps any obstacle.
func (m *ObstacleMap) Collides(c Vec2, radius float64) bool {
	if m == nil {
		return false
	}
	for _, r := range m.rects {
		if CircleIntersectsRect(c, radius, r) {
			return true
		}
	}
	return false
}

// Rects returns a copy of the obstacle rectangles.
func (m *ObstacleMap) Rects() []Rect {
	if m == nil {
		return nil
	}
	cp := make([]Rect, len(m.rects))
	copy(cp, m.rects)
	return cp
}

func (m *ObstacleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rects)
}

// DefaultObstacles is the symmetric 1600x900 layout: a centre pillar and
// four L-shaped walls, one per quadrant.
func DefaultObstacles() []Rect {
	return []Rect{
		// Centre pillar
		{X: 700, Y: 350, W: 200, H: 200},
		// Top-left L
		{X: 200, Y: 150, W: 200, H: 50},
		{X: 200, Y: 150, W: 50, H: 200},
		// Top-right L
		{X: 1200, Y: 150, W: 200, H: 50},
		{X: 1350, Y: 150, W: 50, H: 200},
		// Bottom-left L
		{X: 200, Y: 700, W: 200, H: 50},
		{X: 200, Y: 550, W: 50, H: 200},
		// Bottom-right L
		{X: 1200, Y: 700, W: 200, H: 50},
		{X: 1350, Y: 550, W: 50, H: 200},
	}
}
