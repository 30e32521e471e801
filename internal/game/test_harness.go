package game

import (
	"fmt"
	"math/rand"
)

// harnessStartMs is where the manual clock starts, far enough from zero
// that a fresh character's cooldown is already spent.
const harnessStartMs = 10_000

// TestMatch is a headless match driven by a manual clock. It is used by
// tests and the headless report; it has no Ebiten dependency.
type TestMatch struct {
	Engine  *Engine
	Clock   *ManualClock
	Sounds  *CueRecorder
	Winners []string // every OnGameOver notification, in order

	cfg        Config
	seed       int64
	playerName string
	keys       KeySet
	pointer    Vec2
}

type matchOptionKind int

const (
	matchOptConfig matchOptionKind = iota // arena, rules, seed: applied before the engine is built
	matchOptSetup                         // placement and state tweaks: applied after Start
)

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithArena sets the arena dimensions.
func WithArena(w, h float64) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.Width = w
		tm.cfg.Height = h
	}}
}

// WithObstacle adds an obstacle rectangle.
func WithObstacle(x, y, w, h float64) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.Obstacles = append(tm.cfg.Obstacles, Rect{X: x, Y: y, W: w, H: h})
	}}
}

// WithNoObstacles removes the default layout.
func WithNoObstacles() MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.Obstacles = nil
	}}
}

// WithBotCount sets how many bots join the match.
func WithBotCount(n int) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.BotCount = n
	}}
}

// WithScoreToWin sets the kill threshold.
func WithScoreToWin(n int) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.ScoreToWin = n
	}}
}

// WithDuration sets the match length in seconds.
func WithDuration(seconds float64) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.MatchDuration = seconds
	}}
}

// WithMatchSeed sets the RNG seed for deterministic runs.
func WithMatchSeed(seed int64) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.seed = seed
	}}
}

// WithAutopilot lets the player fight with the bot logic.
func WithAutopilot(on bool) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg.AutopilotPlayer = on
	}}
}

// WithPlayerName sets the name passed to Start.
func WithPlayerName(name string) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.playerName = name
	}}
}

// WithConfig replaces the whole configuration. Later config options still apply.
func WithConfig(cfg Config) MatchOption {
	return MatchOption{matchOptConfig, func(tm *TestMatch) {
		tm.cfg = cfg
	}}
}

// WithCharacterAt moves the named character to (x, y) after spawning.
func WithCharacterAt(name string, x, y float64) MatchOption {
	return MatchOption{matchOptSetup, func(tm *TestMatch) {
		ent := tm.Character(name)
		if ent == nil {
			panic(fmt.Sprintf("test match: no character %q", name))
		}
		tm.Place(ent, Vec2{X: x, Y: y})
	}}
}

// NewTestMatch builds and starts a match in two ordered passes:
//  1. Configuration (arena, rules, seed), then engine construction and Start
//  2. Setup (character placement)
//
// It panics on an invalid configuration.
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		cfg:        DefaultConfig(),
		seed:       1,
		playerName: defaultPlayerName,
		Clock:      &ManualClock{},
		Sounds:     &CueRecorder{},
		keys:       KeySet{},
	}
	for _, o := range opts {
		if o.kind == matchOptConfig {
			o.fn(tm)
		}
	}
	tm.Clock.Set(harnessStartMs)

	eng, err := NewEngine(tm.cfg,
		WithRand(rand.New(rand.NewSource(tm.seed))), // #nosec G404 -- test harness
		WithClock(tm.Clock),
		WithSound(tm.Sounds),
	)
	if err != nil {
		panic(fmt.Sprintf("test match: %v", err))
	}
	eng.OnGameOver(func(winner string) {
		tm.Winners = append(tm.Winners, winner)
	})
	tm.Engine = eng
	eng.Start(tm.playerName)

	for _, o := range opts {
		if o.kind == matchOptSetup {
			o.fn(tm)
		}
	}
	return tm
}

// Step advances the clock by dt seconds and runs one tick.
func (tm *TestMatch) Step(dt float64) {
	tm.Clock.Advance(dt * 1000)
	tm.Engine.Update(tm.Clock.NowMillis())
}

// RunTicks runs n ticks of dt seconds each.
func (tm *TestMatch) RunTicks(n int, dt float64) {
	for i := 0; i < n; i++ {
		tm.Step(dt)
	}
}

// RunUntil runs ticks of dt seconds until predicate holds or maxTicks have
// run. It returns the tick count at which predicate held, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int, dt float64) int {
	for i := 1; i <= maxTicks; i++ {
		tm.Step(dt)
		if predicate(tm) {
			return i
		}
	}
	return -1
}

// Player returns the live player entity.
func (tm *TestMatch) Player() *Entity {
	return tm.Engine.player()
}

// Bots returns the live bot entities in collection order.
func (tm *TestMatch) Bots() []*Entity {
	var out []*Entity
	for _, ent := range tm.Engine.entities {
		if ent.Kind == KindBot {
			out = append(out, ent)
		}
	}
	return out
}

// Character returns the live character with the given name, or nil.
func (tm *TestMatch) Character(name string) *Entity {
	for _, ent := range tm.Engine.entities {
		if ent.IsCharacter() && ent.Character.Name == name {
			return ent
		}
	}
	return nil
}

// Projectiles returns the live projectiles in collection order.
func (tm *TestMatch) Projectiles() []*Entity {
	var out []*Entity
	for _, ent := range tm.Engine.entities {
		if ent.Kind == KindProjectile {
			out = append(out, ent)
		}
	}
	return out
}

// Place teleports ent to pos and stops it.
func (tm *TestMatch) Place(ent *Entity, pos Vec2) {
	ent.Pos = pos
	ent.Vel = Vec2{}
}

// SpawnProjectile injects a shot owned by owner without touching its cooldown.
func (tm *TestMatch) SpawnProjectile(owner *Entity, pos, vel Vec2) *Entity {
	e := tm.Engine
	ph := e.cfg.Physics
	p := &Entity{
		ID:       e.newID(),
		Kind:     KindProjectile,
		Pos:      pos,
		Vel:      vel,
		Radius:   ph.ProjectileRadius,
		Color:    ProjectileColor,
		Rotation: Bearing(Vec2{}, vel),
		Projectile: &ProjectileState{
			Damage:  ph.ProjectileDamage,
			OwnerID: owner.ID,
			Speed:   vel.Len(),
		},
	}
	e.entities = append(e.entities, p)
	return p
}

// Hold replaces the held keys.
func (tm *TestMatch) Hold(keys ...string) {
	tm.keys = NewKeySet(keys...)
	tm.Engine.HandleInput(tm.keys, tm.pointer, false)
}

// Aim moves the pointer without firing.
func (tm *TestMatch) Aim(at Vec2) {
	tm.pointer = at
	tm.Engine.HandleInput(tm.keys, tm.pointer, false)
}

// Fire pulls the trigger toward at. It reports whether a projectile spawned.
func (tm *TestMatch) Fire(at Vec2) bool {
	before := len(tm.Projectiles())
	tm.pointer = at
	tm.Engine.HandleInput(tm.keys, tm.pointer, true)
	return len(tm.Projectiles()) > before
}

// Freeze stops every bot from moving or firing so scenarios control all motion.
func (tm *TestMatch) Freeze() {
	for _, b := range tm.Bots() {
		b.Character.Speed = 0
		b.Character.FireRate = 1e12
	}
}

// CueRecorder is a SoundPlayer that records every cue.
type CueRecorder struct {
	Cues []SoundCue
}

func (r *CueRecorder) Play(cue SoundCue) {
	r.Cues = append(r.Cues, cue)
}

// Count returns how many times cue was played.
func (r *CueRecorder) Count(cue SoundCue) int {
	n := 0
	for _, c := range r.Cues {
		if c == cue {
			n++
		}
	}
	return n
}
