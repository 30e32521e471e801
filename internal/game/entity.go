package game

import "image/color"

// EntityID identifies an entity for its lifetime. IDs come from a
// per-engine counter and are never reused within a match.
type EntityID uint64

// EntityKind tags which payload an Entity carries.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota
	KindBot
	KindProjectile
	KindParticle
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBot:
		return "bot"
	case KindProjectile:
		return "projectile"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Presentation hints. The engine copies these onto entities and never reads them back.
var (
	PlayerColor     = color.RGBA{R: 59, G: 130, B: 246, A: 255} // blue
	BotColor        = color.RGBA{R: 239, G: 68, B: 68, A: 255}  // red
	ProjectileColor = color.RGBA{R: 252, G: 211, B: 77, A: 255} // amber
	ImpactColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Entity is the shared core of every simulated object. Exactly one of the
// payload pointers is non-nil and it always matches Kind:
//
//	KindPlayer, KindBot -> Character
//	KindProjectile      -> Projectile
//	KindParticle        -> Particle
type Entity struct {
	ID       EntityID
	Kind     EntityKind
	Pos      Vec2
	Vel      Vec2
	Radius   float64
	Color    color.RGBA
	Rotation float64 // radians

	// PendingRemoval drops the entity at the end of the current tick.
	PendingRemoval bool

	Character  *CharacterState
	Projectile *ProjectileState
	Particle   *ParticleState
}

// CharacterState is the payload shared by the player and bots.
type CharacterState struct {
	Name        string
	Health      float64
	MaxHealth   float64
	Speed       float64 // px/s
	FireRate    float64 // minimum ms between shots
	LastFiredAt float64 // ms, engine clock
	Kills       int
	Deaths      int
	TeamID      int
}

// ProjectileState is the payload of a fired shot.
type ProjectileState struct {
	Damage  float64
	OwnerID EntityID
	Speed   float64
}

// ParticleState is the payload of a cosmetic spark.
type ParticleState struct {
	Life  float64 // 1.0 at spawn, removed at <= 0
	Decay float64 // life lost per second
}

// IsCharacter reports whether e is the player or a bot.
func (e *Entity) IsCharacter() bool {
	return e.Kind == KindPlayer || e.Kind == KindBot
}

// Alive reports whether e is a character with positive health.
func (e *Entity) Alive() bool {
	return e.IsCharacter() && e.Character.Health > 0
}

// clone returns a deep copy so snapshots never alias engine state.
func (e *Entity) clone() Entity {
	cp := *e
	if e.Character != nil {
		c := *e.Character
		cp.Character = &c
	}
	if e.Projectile != nil {
		p := *e.Projectile
		cp.Projectile = &p
	}
	if e.Particle != nil {
		p := *e.Particle
		cp.Particle = &p
	}
	return cp
}
