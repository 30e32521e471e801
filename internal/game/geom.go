package game

import "math"

// Vec2 is a point or velocity in arena space (pixels, y grows downward).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector along v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns a vector of the given length pointing along theta (radians).
func FromAngle(theta, length float64) Vec2 {
	return Vec2{X: math.Cos(theta) * length, Y: math.Sin(theta) * length}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Bearing returns the angle (radians, atan2 convention) from one point to another.
func Bearing(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Rect is an axis-aligned rectangle. X,Y is the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// CircleIntersectsRect reports whether the circle (c, radius) overlaps r.
// The closest point of r to c must lie strictly inside the radius, so a
// zero-radius circle never collides, not even when c sits on an edge.
func CircleIntersectsRect(c Vec2, radius float64, r Rect) bool {
	closestX := clamp(c.X, r.X, r.X+r.W)
	closestY := clamp(c.Y, r.Y, r.Y+r.H)
	dx := c.X - closestX
	dy := c.Y - closestY
	return dx*dx+dy*dy < radius*radius
}

// clamp limits v to [lo, hi]. When lo > hi the lower bound wins.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
