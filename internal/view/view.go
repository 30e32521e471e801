// Package view is the desktop front-end: it feeds Ebiten input into the
// engine and draws its snapshots.
package view

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/arena-blitz/internal/game"
)

const copyFlashDuration = 2 * time.Second

// Game implements ebiten.Game around an engine.
type Game struct {
	engine *game.Engine
	clock  game.Clock
	logger *log.Logger

	nameInput string
	copiedAt  time.Time
	copyErr   error
}

// New wraps eng. clock must be the clock the engine was built with.
func New(eng *game.Engine, clock game.Clock, defaultName string, logger *log.Logger) *Game {
	g := &Game{
		engine:    eng,
		clock:     clock,
		logger:    logger,
		nameInput: editName("", []rune(defaultName), false),
	}
	eng.OnGameOver(func(winner string) {
		g.logger.Info("game over", "winner", winner)
	})
	return g
}

func (g *Game) Update() error {
	switch g.engine.State() {
	case game.StateMenu:
		g.updateMenu()
	case game.StatePlaying:
		g.updatePlaying()
	case game.StateGameOver:
		g.updateGameOver()
	}
	return nil
}

func (g *Game) updateMenu() {
	typed := ebiten.AppendInputChars(nil)
	g.nameInput = editName(g.nameInput, typed, inpututil.IsKeyJustPressed(ebiten.KeyBackspace))
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.engine.Start(playerName(g.nameInput))
	}
}

func (g *Game) updatePlaying() {
	cx, cy := ebiten.CursorPosition()
	trigger := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.engine.HandleInput(heldKeys(ebiten.IsKeyPressed), game.Vec2{X: float64(cx), Y: float64(cy)}, trigger)
	g.engine.Update(g.clock.NowMillis())
}

func (g *Game) updateGameOver() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.engine.Start(playerName(g.nameInput))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyResult()
	}
}

// copyResult puts the final scoreboard on the system clipboard.
func (g *Game) copyResult() {
	res, ok := g.engine.Result()
	if !ok {
		return
	}
	g.copiedAt = time.Now()
	g.copyErr = clipboard.WriteAll(resultText(res))
	if g.copyErr != nil {
		g.logger.Warn("clipboard copy failed", "err", g.copyErr)
	}
}

// resultText is the plain-text summary copied to the clipboard.
func resultText(res game.Result) string {
	return fmt.Sprintf("Arena Blitz: %s\n%s", res.Summary(), game.Scoreboard(res.Standings))
}

func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.engine.Config()
	return int(cfg.Width), int(cfg.Height)
}
