package view

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/arena-blitz/internal/game"
)

// --- Palette ---

var (
	floorColor    = color.RGBA{R: 17, G: 24, B: 39, A: 255}
	gridColor     = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	wallFill      = color.RGBA{R: 55, G: 65, B: 81, A: 255}
	wallEdge      = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	panelColor    = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	textColor     = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	dimTextColor  = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	healthBack    = color.RGBA{R: 127, G: 29, B: 29, A: 255}
	healthFront   = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	downedOutline = color.RGBA{R: 75, G: 85, B: 99, A: 255}
)

const (
	gridStep  = 50
	barrelLen = 30
	lineH     = 16
)

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.engine.Snapshot()
	g.drawArena(screen)
	if snap.State == game.StateMenu {
		g.drawMenu(screen)
		return
	}
	drawEntities(screen, snap.Entities)
	g.drawHUD(screen, snap)
	if snap.State == game.StateGameOver {
		g.drawGameOver(screen)
	}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	cfg := g.engine.Config()
	w, h := float32(cfg.Width), float32(cfg.Height)
	vector.FillRect(screen, 0, 0, w, h, floorColor, false)
	for x := float32(0); x < w; x += gridStep {
		vector.StrokeLine(screen, x, 0, x, h, 1, gridColor, false)
	}
	for y := float32(0); y < h; y += gridStep {
		vector.StrokeLine(screen, 0, y, w, y, 1, gridColor, false)
	}
	for _, r := range g.engine.Obstacles().Rects() {
		x, y, rw, rh := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		vector.FillRect(screen, x, y, rw, rh, wallFill, false)
		vector.StrokeRect(screen, x, y, rw, rh, 2, wallEdge, false)
	}
}

func drawEntities(screen *ebiten.Image, ents []game.Entity) {
	for i := range ents {
		e := &ents[i]
		x, y, r := float32(e.Pos.X), float32(e.Pos.Y), float32(e.Radius)
		switch e.Kind {
		case game.KindParticle:
			vector.FillCircle(screen, x, y, r, fade(e.Color, e.Particle.Life), true)
		case game.KindProjectile:
			vector.FillCircle(screen, x, y, r, e.Color, true)
		case game.KindPlayer, game.KindBot:
			drawCharacter(screen, e)
		}
	}
}

func drawCharacter(screen *ebiten.Image, e *game.Entity) {
	x, y, r := float32(e.Pos.X), float32(e.Pos.Y), float32(e.Radius)
	c := e.Character
	if c.Health <= 0 {
		vector.StrokeCircle(screen, x, y, r, 2, downedOutline, true)
		return
	}
	tip := e.Pos.Add(game.FromAngle(e.Rotation, barrelLen))
	vector.StrokeLine(screen, x, y, float32(tip.X), float32(tip.Y), 6, dimTextColor, true)
	vector.FillCircle(screen, x, y, r, e.Color, true)

	barW := 2 * r
	vector.FillRect(screen, x-r, y-r-10, barW, 4, healthBack, false)
	vector.FillRect(screen, x-r, y-r-10, barW*float32(healthFraction(c)), 4, healthFront, false)
	text.Draw(screen, c.Name, basicfont.Face7x13, int(x-r), int(y-r-14), textColor)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	standings := snap.Standings()
	lines := []string{fmt.Sprintf("TIME %s", formatClock(snap.TimeLeft))}
	if p, ok := snap.Player(); ok {
		lines = append(lines, fmt.Sprintf("KILLS %d  DEATHS %d", p.Character.Kills, p.Character.Deaths))
	}
	lines = append(lines, fmt.Sprintf("FIRST TO %d", g.engine.Config().ScoreToWin))
	for i, s := range standings {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %-12s %3d", i+1, s.Name, s.Kills))
	}
	drawPanel(screen, 10, 10, lines)

	feed := g.engine.Log().KillFeed(4)
	cfg := g.engine.Config()
	for i, line := range feed {
		text.Draw(screen, line, basicfont.Face7x13, int(cfg.Width)-220, 24+i*lineH, dimTextColor)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	cfg := g.engine.Config()
	cx, cy := int(cfg.Width)/2-120, int(cfg.Height)/2-60
	lines := []string{
		"ARENA BLITZ",
		"",
		"Name: " + g.nameInput + "_",
		"",
		"WASD / arrows  move",
		"mouse          aim",
		"left button    fire",
		"",
		"ENTER to start",
	}
	drawPanel(screen, cx, cy, lines)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	res, ok := g.engine.Result()
	if !ok {
		return
	}
	cfg := g.engine.Config()
	lines := []string{"GAME OVER", "", "Winner: " + res.Winner, res.Summary(), ""}
	for i, s := range res.Standings {
		lines = append(lines, fmt.Sprintf("%d. %-12s %3d / %d", i+1, s.Name, s.Kills, s.Deaths))
	}
	lines = append(lines, "", "ENTER play again   C copy results")
	if !g.copiedAt.IsZero() && time.Since(g.copiedAt) < copyFlashDuration {
		if g.copyErr != nil {
			lines = append(lines, "copy failed")
		} else {
			lines = append(lines, "copied to clipboard")
		}
	}
	drawPanel(screen, int(cfg.Width)/2-160, int(cfg.Height)/2-140, lines)
	ebitenutil.DebugPrintAt(screen, g.engine.MatchID(), 4, int(cfg.Height)-16)
}

// drawPanel draws lines of text over a translucent box with its top-left at x, y.
func drawPanel(screen *ebiten.Image, x, y int, lines []string) {
	const padX, padY, charW = 10, 8, 7
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := float32(maxLen*charW + 2*padX)
	h := float32(len(lines)*lineH + 2*padY)
	vector.FillRect(screen, float32(x), float32(y), w, h, panelColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), w, h, 1, wallEdge, false)
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, x+padX, y+padY+(i+1)*lineH-4, textColor)
	}
}

// formatClock renders seconds as m:ss, rounding up so 0:00 only shows at the end.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(math.Ceil(seconds))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// fade scales a colour's alpha by life in [0,1].
func fade(c color.RGBA, life float64) color.RGBA {
	life = math.Max(0, math.Min(1, life))
	a := float64(c.A) * life
	// premultiplied alpha
	return color.RGBA{
		R: uint8(float64(c.R) * life),
		G: uint8(float64(c.G) * life),
		B: uint8(float64(c.B) * life),
		A: uint8(a),
	}
}

func healthFraction(c *game.CharacterState) float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, c.Health/c.MaxHealth))
}
