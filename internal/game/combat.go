package game

import (
	"fmt"
	"image/color"
	"math"
)

// --- Combat constants ---

const (
	muzzleOffset = 5.0 // px beyond the shooter's radius where shots spawn

	wallBurstCount  = 5  // sparks when a shot hits a wall or leaves the arena
	hitBurstCount   = 3  // sparks when a shot hits a character
	deathBurstCount = 20 // sparks when a character dies

	particleMinSpeed    = 50.0
	particleSpeedSpread = 100.0
	particleMinRadius   = 1.0
	particleRadiusRange = 3.0
	particleMinDecay    = 1.0
	particleDecayRange  = 2.0
)

// tryShoot fires a projectile from shooter toward target unless the shooter
// is still cooling down. It returns whether a projectile was spawned.
func (e *Engine) tryShoot(shooter *Entity, target Vec2) bool {
	c := shooter.Character
	now := e.clock.NowMillis()
	if now-c.LastFiredAt < c.FireRate {
		return false
	}
	c.LastFiredAt = now

	angle := Bearing(shooter.Pos, target)
	dir := FromAngle(angle, 1)
	ph := e.cfg.Physics
	e.entities = append(e.entities, &Entity{
		ID:       e.newID(),
		Kind:     KindProjectile,
		Pos:      shooter.Pos.Add(dir.Scale(shooter.Radius + muzzleOffset)),
		Vel:      dir.Scale(ph.ProjectileSpeed),
		Radius:   ph.ProjectileRadius,
		Color:    ProjectileColor,
		Rotation: angle,
		Projectile: &ProjectileState{
			Damage:  ph.ProjectileDamage,
			OwnerID: shooter.ID,
			Speed:   ph.ProjectileSpeed,
		},
	})
	e.sound.Play(CueShoot)
	e.matchLog.Add(e.tick, c.Name, LogFire, "shot", fmt.Sprintf("bearing %.2f", angle), angle)
	return true
}

// updateProjectile advances a shot and resolves its single terminal event:
// leaving the arena, hitting an obstacle, or hitting a living character
// other than its owner (first in collection order).
func (e *Engine) updateProjectile(p *Entity, dt float64) {
	if p.PendingRemoval {
		return
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	arena := Rect{W: e.bounds.W, H: e.bounds.H}
	if !arena.Contains(p.Pos) || e.obstacles.Collides(p.Pos, p.Radius) {
		p.PendingRemoval = true
		e.spawnParticles(p.Pos, ProjectileColor, wallBurstCount)
		e.matchLog.Add(e.tick, e.nameOf(p.Projectile.OwnerID), LogProjectile, "expired",
			fmt.Sprintf("(%.0f,%.0f)", p.Pos.X, p.Pos.Y), 0)
		return
	}

	for _, ent := range e.entities {
		if !ent.Alive() || ent.ID == p.Projectile.OwnerID {
			continue
		}
		if Distance(p.Pos, ent.Pos) < ent.Radius+p.Radius {
			e.applyDamage(ent, p.Projectile.Damage, p.Projectile.OwnerID)
			p.PendingRemoval = true
			e.spawnParticles(p.Pos, ImpactColor, hitBurstCount)
			e.sound.Play(CueHit)
			return
		}
	}
}

// applyDamage subtracts health from victim and, when it drops to zero,
// records the death and credits the attacker if it still exists. Health is
// floored at zero; the victim stays in the arena until its next update
// respawns it.
func (e *Engine) applyDamage(victim *Entity, amount float64, attackerID EntityID) {
	vc := victim.Character
	vc.Health -= amount
	e.matchLog.Add(e.tick, vc.Name, LogHit, "damage",
		fmt.Sprintf("%.0f from %s", amount, e.nameOf(attackerID)), amount)
	if vc.Health > 0 {
		return
	}
	vc.Health = 0
	vc.Deaths++
	e.sound.Play(CueDie)
	e.spawnParticles(victim.Pos, victim.Color, deathBurstCount)

	attacker := e.find(attackerID)
	if attacker == nil || !attacker.IsCharacter() {
		e.matchLog.Add(e.tick, vc.Name, LogKill, "death", "killed by unknown", 0)
		return
	}
	ac := attacker.Character
	ac.Kills++
	e.matchLog.Add(e.tick, vc.Name, LogKill, "death", "killed by "+ac.Name, 0)
	e.matchLog.Add(e.tick, ac.Name, LogKill, "kill", "fragged "+vc.Name, float64(ac.Kills))
	e.logger.Debug("kill", "match", e.matchID, "killer", ac.Name, "victim", vc.Name, "kills", ac.Kills)
}

// spawnParticles emits a radial burst of short-lived sparks at pos.
func (e *Engine) spawnParticles(pos Vec2, col color.RGBA, count int) {
	for i := 0; i < count; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.rng.Float64()*particleSpeedSpread + particleMinSpeed
		e.entities = append(e.entities, &Entity{
			ID:     e.newID(),
			Kind:   KindParticle,
			Pos:    pos,
			Vel:    FromAngle(angle, speed),
			Radius: e.rng.Float64()*particleRadiusRange + particleMinRadius,
			Color:  col,
			Particle: &ParticleState{
				Life:  1.0,
				Decay: e.rng.Float64()*particleDecayRange + particleMinDecay,
			},
		})
	}
}

func (e *Engine) updateParticle(p *Entity, dt float64) {
	p.Particle.Life -= p.Particle.Decay * dt
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	if p.Particle.Life <= 0 {
		p.PendingRemoval = true
	}
}
