package game

import "math"

// --- Bot tuning ---

const (
	approachDistance = 200.0 // farther than this: close in
	retreatDistance  = 100.0 // nearer than this: back off
	fireDistance     = 500.0 // shoot only inside this range
	strafeFactor     = 0.5   // strafe speed as a fraction of move speed
	aimErrorSpread   = 0.2   // total width of the uniform aim error, radians
	aimLeadDistance  = 100.0 // aim point projected this far along the perturbed bearing
)

// BotIntent is the decision of one bot for one tick.
type BotIntent struct {
	Velocity  Vec2
	Rotation  float64
	HasTarget bool
	Fire      bool
	AimAt     Vec2
}

// nearestEnemy returns the closest living character other than self. Ties
// keep the first one found.
func nearestEnemy(self *Entity, entities []*Entity) (*Entity, float64) {
	var best *Entity
	bestDist := math.Inf(1)
	for _, ent := range entities {
		if ent == self || !ent.Alive() {
			continue
		}
		if d := Distance(self.Pos, ent.Pos); d < bestDist {
			best, bestDist = ent, d
		}
	}
	return best, bestDist
}

// planBot decides movement, facing and firing for self against the nearest
// enemy. aimError is the angular error in radians applied when firing.
func planBot(self *Entity, entities []*Entity, aimError float64) BotIntent {
	target, dist := nearestEnemy(self, entities)
	if target == nil {
		return BotIntent{Rotation: self.Rotation}
	}

	angle := Bearing(self.Pos, target.Pos)
	speed := self.Character.Speed
	intent := BotIntent{Rotation: angle, HasTarget: true}

	switch {
	case dist > approachDistance:
		intent.Velocity = FromAngle(angle, speed)
	case dist < retreatDistance:
		intent.Velocity = FromAngle(angle, -speed)
	default:
		// Perpendicular to the bearing, always the same side.
		intent.Velocity = Vec2{X: -math.Sin(angle), Y: math.Cos(angle)}.Scale(speed * strafeFactor)
	}

	if dist < fireDistance {
		intent.Fire = true
		intent.AimAt = target.Pos.Add(FromAngle(angle+aimError, aimLeadDistance))
	}
	return intent
}

// updateBot runs the bot decision for ent and applies it. The shot leaves
// from the position the aim was planned at, before the bot moves.
func (e *Engine) updateBot(ent *Entity, dt float64) {
	aimError := (e.rng.Float64() - 0.5) * aimErrorSpread
	intent := planBot(ent, e.entities, aimError)

	ent.Vel = intent.Velocity
	ent.Rotation = intent.Rotation
	if intent.Fire {
		e.tryShoot(ent, intent.AimAt)
	}
	e.moveCharacter(ent, dt)
}
