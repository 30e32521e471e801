package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-blitz/internal/game"
)

// Glyphs.
const (
	glyphPlayer     = '@'
	glyphBot        = 'B'
	glyphDowned     = 'x'
	glyphProjectile = '*'
	glyphParticle   = '.'
	glyphWall       = '#'
)

var (
	styleDefault    = tcell.StyleDefault
	styleWall       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDim        = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleHighlight  = tcell.StyleDefault.Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(rgb(game.ProjectileColor.R, game.ProjectileColor.G, game.ProjectileColor.B))
)

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// arenaRect returns the cell area used for the arena.
func (a *App) arenaRect() (cols, rows int) {
	w, h := a.screen.Size()
	rows = h - hudRows - helpRows
	if rows < 1 {
		rows = 1
	}
	if w < 1 {
		w = 1
	}
	return w, rows
}

// arenaToCell maps an arena point to a screen cell.
func (a *App) arenaToCell(p game.Vec2) (int, int) {
	cfg := a.engine.Config()
	cols, rows := a.arenaRect()
	cx := int(p.X / cfg.Width * float64(cols))
	cy := int(p.Y / cfg.Height * float64(rows))
	cx = clampInt(cx, 0, cols-1)
	cy = clampInt(cy, 0, rows-1)
	return cx, cy + hudRows
}

// cellToArena maps a screen cell to the arena point at its centre.
func (a *App) cellToArena(x, y int) game.Vec2 {
	cfg := a.engine.Config()
	cols, rows := a.arenaRect()
	return game.Vec2{
		X: (float64(x) + 0.5) / float64(cols) * cfg.Width,
		Y: (float64(y-hudRows) + 0.5) / float64(rows) * cfg.Height,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw renders the current snapshot and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	snap := a.engine.Snapshot()
	switch snap.State {
	case game.StateMenu:
		a.drawMenu()
	default:
		a.drawArena(snap)
		a.drawStatus(snap)
		if snap.State == game.StateGameOver {
			a.drawGameOver()
		}
	}
	a.screen.Show()
}

func (a *App) drawArena(snap game.Snapshot) {
	cfg := a.engine.Config()
	cols, rows := a.arenaRect()
	cellW := cfg.Width / float64(cols)
	cellH := cfg.Height / float64(rows)
	obstacles := a.engine.Obstacles()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			centre := game.Vec2{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
			if obstacles.Collides(centre, math.Min(cellW, cellH)/2) {
				a.screen.SetContent(x, y+hudRows, glyphWall, nil, styleWall)
			}
		}
	}

	// Characters go last so they are never hidden by sparks.
	for _, kind := range []game.EntityKind{game.KindParticle, game.KindProjectile, game.KindBot, game.KindPlayer} {
		for i := range snap.Entities {
			e := &snap.Entities[i]
			if e.Kind != kind {
				continue
			}
			x, y := a.arenaToCell(e.Pos)
			glyph, style := entityGlyph(e)
			a.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func entityGlyph(e *game.Entity) (rune, tcell.Style) {
	switch e.Kind {
	case game.KindPlayer, game.KindBot:
		if e.Character.Health <= 0 {
			return glyphDowned, styleDim
		}
		g := glyphBot
		if e.Kind == game.KindPlayer {
			g = glyphPlayer
		}
		return g, tcell.StyleDefault.Foreground(rgb(e.Color.R, e.Color.G, e.Color.B)).Bold(true)
	case game.KindProjectile:
		return glyphProjectile, styleProjectile
	default:
		return glyphParticle, tcell.StyleDefault.Foreground(rgb(e.Color.R, e.Color.G, e.Color.B))
	}
}

func (a *App) drawStatus(snap game.Snapshot) {
	cols, rows := a.arenaRect()
	status := fmt.Sprintf(" TIME %s  FIRST TO %d", clock(snap.TimeLeft), a.engine.Config().ScoreToWin)
	if p, ok := snap.Player(); ok {
		status += fmt.Sprintf("  HP %3.0f  K %d  D %d", p.Character.Health, p.Character.Kills, p.Character.Deaths)
	}
	if st := snap.Standings(); len(st) > 0 {
		status += fmt.Sprintf("  LEADER %s (%d)", st[0].Name, st[0].Kills)
	}
	for x := 0; x < cols; x++ {
		a.screen.SetContent(x, 0, ' ', nil, styleHUD)
	}
	a.drawText(0, 0, status, styleHUD)
	a.drawText(1, hudRows+rows, "wasd/arrows move  space fire  mouse aim  esc quit", styleDim)
}

func (a *App) drawMenu() {
	lines := []string{
		"ARENA BLITZ",
		"",
		"Name: " + a.nameInput + "_",
		"",
		"ENTER start   ESC quit",
	}
	a.drawCentered(lines, styleDefault)
}

func (a *App) drawGameOver() {
	res, ok := a.engine.Result()
	if !ok {
		return
	}
	lines := []string{"GAME OVER", "Winner: " + res.Winner, res.Summary(), ""}
	for i, s := range res.Standings {
		if i == 6 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %-12s %3d / %-3d", i+1, s.Name, s.Kills, s.Deaths))
	}
	lines = append(lines, "", "ENTER play again   ESC quit")
	a.drawCentered(lines, styleHighlight)
}

func (a *App) drawCentered(lines []string, style tcell.Style) {
	w, h := a.screen.Size()
	top := (h - len(lines)) / 2
	for i, l := range lines {
		x := (w - len([]rune(l))) / 2
		a.drawText(x, top+i, l, style)
	}
}

func (a *App) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func clock(seconds float64) string {
	s := int(math.Ceil(math.Max(0, seconds)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
