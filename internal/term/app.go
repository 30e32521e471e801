// Package term is a terminal front-end for the arena built on tcell.
// Terminals report key presses but not releases, so a movement key counts
// as held for a short window after its last press or auto-repeat.
package term

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-blitz/internal/game"
)

const (
	holdWindowMs = 150.0 // a key stays held this long after its last event
	maxNameLen   = 12
	hudRows      = 1 // status line above the arena
	helpRows     = 1 // key help below the arena
)

// App owns the screen and drives one engine.
type App struct {
	screen tcell.Screen
	engine *game.Engine
	clock  game.Clock
	logger *log.Logger

	held       map[string]float64 // control name -> ms of last press
	pointer    game.Vec2
	hasPointer bool
	trigger    bool
	nameInput  string
}

// New binds an initialised screen to eng. clock must be the engine's clock.
func New(screen tcell.Screen, eng *game.Engine, clock game.Clock, defaultName string, logger *log.Logger) *App {
	name := []rune(defaultName)
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return &App{
		screen:    screen,
		engine:    eng,
		clock:     clock,
		logger:    logger,
		held:      map[string]float64{},
		nameInput: string(name),
	}
}

// Run polls events and ticks every interval until ctx ends or the user quits.
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	events := make(chan tcell.Event, 64)
	go pumpEvents(ctx, a.screen.PollEvent, events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Tick(a.clock.NowMillis())
			a.Draw()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or ctx
// ends, then closes out.
func pumpEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		a.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.pointer = a.cellToArena(x, y)
		a.hasPointer = true
		if ev.Buttons()&tcell.Button1 != 0 {
			a.trigger = true
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch a.engine.State() {
	case game.StateMenu:
		a.editName(ev)
	case game.StatePlaying:
		a.pressControl(ev)
	case game.StateGameOver:
		if ev.Key() == tcell.KeyEnter {
			a.start()
		}
	}
}

func (a *App) editName(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.start()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(a.nameInput); len(r) > 0 {
			a.nameInput = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		r := []rune(a.nameInput)
		if len(r) < maxNameLen && !(ev.Rune() == ' ' && len(r) == 0) {
			a.nameInput = string(append(r, ev.Rune()))
		}
	}
}

var arrowNames = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
}

func (a *App) pressControl(ev *tcell.EventKey) {
	now := a.clock.NowMillis()
	if name, ok := arrowNames[ev.Key()]; ok {
		a.held[name] = now
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch r := ev.Rune(); r {
	case 'w', 'a', 's', 'd':
		a.held[string(r)] = now
	case 'W', 'A', 'S', 'D':
		a.held[string(r+'a'-'A')] = now
	case ' ':
		a.trigger = true
	}
}

func (a *App) start() {
	a.held = map[string]float64{}
	a.trigger = false
	a.engine.Start(a.nameInput)
	a.logger.Debug("terminal match started", "match", a.engine.MatchID())
}

// heldKeys returns the controls pressed within the hold window before now.
func (a *App) heldKeys(now float64) game.KeySet {
	ks := game.KeySet{}
	for name, at := range a.held {
		if now-at <= holdWindowMs {
			ks[name] = struct{}{}
		}
	}
	return ks
}

// Tick feeds input to the engine and advances it to now.
func (a *App) Tick(now float64) {
	if a.engine.State() != game.StatePlaying {
		return
	}
	aim, ok := a.aimPoint()
	a.engine.HandleInput(a.heldKeys(now), aim, a.trigger && ok)
	a.trigger = false
	a.engine.Update(now)
}

// aimPoint is the mouse position when the terminal reports one, otherwise
// the nearest living bot.
func (a *App) aimPoint() (game.Vec2, bool) {
	if a.hasPointer {
		return a.pointer, true
	}
	snap := a.engine.Snapshot()
	p, ok := snap.Player()
	if !ok {
		return game.Vec2{}, false
	}
	best, bestDist := game.Vec2{}, math.Inf(1)
	found := false
	for _, e := range snap.Characters() {
		if e.Kind != game.KindBot || !e.Alive() {
			continue
		}
		if d := game.Distance(p.Pos, e.Pos); d < bestDist {
			best, bestDist, found = e.Pos, d, true
		}
	}
	return best, found
}
