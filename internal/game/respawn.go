package game

import "fmt"

const (
	spawnMargin   = 50.0 // px kept clear of the arena edge when sampling
	spawnAttempts = 10
)

// respawn restores a character to full health at a fresh random point.
// Points are sampled inside the margin-inset arena and rejected when a
// circle of twice the character's radius would touch an obstacle. After
// spawnAttempts rejections the last sample is used anyway.
func (e *Engine) respawn(ent *Entity) {
	var pos Vec2
	for i := 0; i < spawnAttempts; i++ {
		pos = e.sampleSpawnPoint()
		if !e.obstacles.Collides(pos, ent.Radius*2) {
			break
		}
	}
	pos.X = clamp(pos.X, ent.Radius, e.bounds.W-ent.Radius)
	pos.Y = clamp(pos.Y, ent.Radius, e.bounds.H-ent.Radius)

	ent.Pos = pos
	ent.Vel = Vec2{}
	ent.Character.Health = ent.Character.MaxHealth
	e.matchLog.Add(e.tick, ent.Character.Name, LogRespawn, "placed",
		fmt.Sprintf("(%.0f,%.0f)", pos.X, pos.Y), 0)
}

func (e *Engine) sampleSpawnPoint() Vec2 {
	w := e.bounds.W - 2*spawnMargin
	h := e.bounds.H - 2*spawnMargin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Vec2{
		X: e.rng.Float64()*w + spawnMargin,
		Y: e.rng.Float64()*h + spawnMargin,
	}
}
