package game

// Bounds is the playable area [0,W] x [0,H].
type Bounds struct {
	W, H float64
}

// MoveCircle advances a circle by vel*dt, keeps it inside the arena and
// resolves obstacle overlap one axis at a time: X is tested first with the
// old Y and reverted on collision, then Y is tested with the resolved X.
// Reverting per axis lets a circle pushed diagonally into a wall keep
// sliding along it. Velocity is left to the caller.
func MoveCircle(pos, vel Vec2, radius, dt float64, b Bounds, obstacles *ObstacleMap) Vec2 {
	next := pos.Add(vel.Scale(dt))
	newX := clamp(next.X, radius, b.W-radius)
	newY := clamp(next.Y, radius, b.H-radius)

	if obstacles.Collides(Vec2{X: newX, Y: pos.Y}, radius) {
		newX = pos.X
	}
	if obstacles.Collides(Vec2{X: newX, Y: newY}, radius) {
		newY = pos.Y
	}
	return Vec2{X: newX, Y: newY}
}

// moveCharacter applies the resolver to a character entity in place.
func (e *Engine) moveCharacter(ent *Entity, dt float64) {
	ent.Pos = MoveCircle(ent.Pos, ent.Vel, ent.Radius, dt, e.bounds, e.obstacles)
}
