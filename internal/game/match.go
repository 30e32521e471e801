package game

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// maxFrameDt caps a single tick so a stalled frame cannot tunnel shots
// through walls or teleport characters.
const maxFrameDt = 0.1

const defaultPlayerName = "Hero"

// MatchState is the phase of the match state machine.
type MatchState int

const (
	StateMenu MatchState = iota
	StatePlaying
	StateGameOver
)

func (s MatchState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// KeySet is the set of held control names ("w", "ArrowUp", ...).
type KeySet map[string]struct{}

// NewKeySet builds a set from the given names.
func NewKeySet(names ...string) KeySet {
	ks := make(KeySet, len(names))
	for _, n := range names {
		ks[n] = struct{}{}
	}
	return ks
}

// Has reports whether name is held.
func (ks KeySet) Has(name string) bool {
	_, ok := ks[name]
	return ok
}

type inputState struct {
	keys    KeySet
	pointer Vec2
}

// Engine owns the arena and runs the match. It is single-threaded: the host
// calls HandleInput and Update from one goroutine and reads Snapshot between
// ticks.
type Engine struct {
	cfg       Config
	bounds    Bounds
	obstacles *ObstacleMap

	entities []*Entity
	nextID   EntityID

	state    MatchState
	timeLeft float64
	lastTime float64
	tick     int
	matchID  string
	result   *Result

	input inputState

	rng       *rand.Rand
	clock     Clock
	sound     SoundPlayer
	logger    *log.Logger
	matchLog  *MatchLog
	observers []func(winner string)
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithSeed makes every random draw of the engine deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithRand injects the random source directly.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock sets the time base used for fire cooldowns and timestamps.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSound routes sound cues to p.
func WithSound(p SoundPlayer) Option {
	return func(e *Engine) { e.sound = p }
}

// WithLogger sets the structured logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine validates cfg and returns an engine in the menu state.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		bounds:    Bounds{W: cfg.Width, H: cfg.Height},
		obstacles: NewObstacleMap(cfg.Obstacles),
		state:     StateMenu,
		timeLeft:  cfg.MatchDuration,
		input:     inputState{keys: KeySet{}},
		matchLog:  NewMatchLog(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- gameplay randomness
	}
	if e.clock == nil {
		e.clock = NewWallClock()
	}
	if e.sound == nil {
		e.sound = NopSound{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e, nil
}

// OnGameOver registers fn to be called once with the winner's name, or
// "Time Limit", whenever a match ends.
func (e *Engine) OnGameOver(fn func(winner string)) {
	e.observers = append(e.observers, fn)
}

// Start begins a fresh match, discarding any previous one. An empty name
// becomes "Hero".
func (e *Engine) Start(playerName string) {
	if playerName == "" {
		playerName = defaultPlayerName
	}
	e.matchID = uuid.NewString()
	e.entities = e.entities[:0]
	e.nextID = 0
	e.tick = 0
	e.result = nil
	e.matchLog.Reset()
	e.timeLeft = e.cfg.MatchDuration
	e.lastTime = e.clock.NowMillis()
	e.input = inputState{keys: KeySet{}}
	e.state = StatePlaying
	e.sound.Play(CueInit)

	ph := e.cfg.Physics
	e.spawnCharacter(KindPlayer, playerName, ph.PlayerSpeed, ph.FireRateMs, 0, PlayerColor)
	for i := 1; i <= e.cfg.BotCount; i++ {
		e.spawnCharacter(KindBot, fmt.Sprintf("Bot-%d", i), ph.BotSpeed,
			ph.FireRateMs+ph.BotFirePenaltyMs, 1, BotColor)
	}

	e.matchLog.Add(e.tick, "--", LogMatch, "start", playerName, float64(e.cfg.BotCount))
	e.logger.Info("match started", "match", e.matchID, "player", playerName,
		"bots", e.cfg.BotCount, "duration", e.cfg.MatchDuration)
}

func (e *Engine) spawnCharacter(kind EntityKind, name string, speed, fireRate float64, team int, col color.RGBA) *Entity {
	ph := e.cfg.Physics
	ent := &Entity{
		ID:     e.newID(),
		Kind:   kind,
		Radius: ph.CharacterRadius,
		Color:  col,
		Character: &CharacterState{
			Name:        name,
			Health:      ph.MaxHealth,
			MaxHealth:   ph.MaxHealth,
			Speed:       speed,
			FireRate:    fireRate,
			LastFiredAt: 0,
			TeamID:      team,
		},
	}
	e.respawn(ent)
	e.entities = append(e.entities, ent)
	return ent
}

// HandleInput records the held keys and pointer for the next tick. A
// pressed trigger fires immediately, subject to the player's cooldown.
func (e *Engine) HandleInput(keys KeySet, pointer Vec2, trigger bool) {
	cp := make(KeySet, len(keys))
	for k := range keys {
		cp[k] = struct{}{}
	}
	e.input = inputState{keys: cp, pointer: pointer}

	if e.state != StatePlaying || !trigger || e.cfg.AutopilotPlayer {
		return
	}
	if p := e.player(); p != nil {
		e.tryShoot(p, pointer)
	}
}

// Update advances the simulation to timestamp now (milliseconds, same base
// as the engine clock). It does nothing outside the playing state.
func (e *Engine) Update(now float64) {
	if e.state != StatePlaying {
		return
	}
	dt := clamp((now-e.lastTime)/1000, 0, maxFrameDt)
	e.lastTime = now
	e.tick++

	e.timeLeft -= dt
	if e.timeLeft <= 0 {
		e.timeLeft = 0
		e.endGame("Time Limit", ReasonTimeLimit)
		return
	}

	// Entities appended during the tick (shots, sparks) are first updated next tick.
	n := len(e.entities)
	for i := 0; i < n; i++ {
		ent := e.entities[i]
		switch ent.Kind {
		case KindPlayer, KindBot:
			e.updateCharacter(ent, dt)
		case KindProjectile:
			e.updateProjectile(ent, dt)
		case KindParticle:
			e.updateParticle(ent, dt)
		}
	}
	e.compact()

	if top := e.topScorer(); top != nil && top.Character.Kills >= e.cfg.ScoreToWin {
		e.endGame(top.Character.Name, ReasonScore)
	}
}

func (e *Engine) updateCharacter(ent *Entity, dt float64) {
	if ent.Character.Health <= 0 {
		e.respawn(ent)
		return
	}
	if ent.Kind == KindPlayer && !e.cfg.AutopilotPlayer {
		e.updatePlayer(ent, dt)
		return
	}
	e.updateBot(ent, dt)
}

// compact drops entities flagged for removal, keeping order.
func (e *Engine) compact() {
	kept := e.entities[:0]
	for _, ent := range e.entities {
		if !ent.PendingRemoval {
			kept = append(kept, ent)
		}
	}
	for i := len(kept); i < len(e.entities); i++ {
		e.entities[i] = nil
	}
	e.entities = kept
}

// topScorer returns the first character with the most kills.
func (e *Engine) topScorer() *Entity {
	var top *Entity
	for _, ent := range e.entities {
		if !ent.IsCharacter() {
			continue
		}
		if top == nil || ent.Character.Kills > top.Character.Kills {
			top = ent
		}
	}
	return top
}

func (e *Engine) endGame(winner string, reason EndReason) {
	e.state = StateGameOver
	res := Result{
		MatchID:   e.matchID,
		Winner:    winner,
		Reason:    reason,
		Duration:  e.cfg.MatchDuration - e.timeLeft,
		Ticks:     e.tick,
		Standings: e.standings(),
	}
	e.result = &res
	e.matchLog.Add(e.tick, "--", LogMatch, "end", winner, res.Duration)
	e.logger.Info("match over", "match", e.matchID, "winner", winner,
		"reason", reason, "elapsed", fmt.Sprintf("%.1fs", res.Duration))
	for _, fn := range e.observers {
		fn(winner)
	}
}

func (e *Engine) newID() EntityID {
	e.nextID++
	return e.nextID
}

func (e *Engine) find(id EntityID) *Entity {
	for _, ent := range e.entities {
		if ent.ID == id {
			return ent
		}
	}
	return nil
}

func (e *Engine) player() *Entity {
	for _, ent := range e.entities {
		if ent.Kind == KindPlayer {
			return ent
		}
	}
	return nil
}

func (e *Engine) nameOf(id EntityID) string {
	if ent := e.find(id); ent != nil && ent.Character != nil {
		return ent.Character.Name
	}
	return "unknown"
}

// --- Accessors ---

func (e *Engine) State() MatchState { return e.state }

// TimeLeft returns the remaining match time in seconds.
func (e *Engine) TimeLeft() float64 { return e.timeLeft }

func (e *Engine) MatchID() string { return e.matchID }

func (e *Engine) Tick() int { return e.tick }

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Obstacles() *ObstacleMap { return e.obstacles }

// Log returns the structured event log of the current match.
func (e *Engine) Log() *MatchLog { return e.matchLog }

// Result returns the outcome of the last finished match.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}
