package view

import (
	"image/color"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Garsondee/arena-blitz/internal/game"
)

func TestHeldKeys(t *testing.T) {
	down := map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyArrowRight: true, ebiten.KeySpace: true}
	ks := heldKeys(func(k ebiten.Key) bool { return down[k] })

	assert.True(t, ks.Has("w"))
	assert.True(t, ks.Has("ArrowRight"))
	assert.Len(t, ks, 2)
	assert.Equal(t, game.Vec2{X: 1, Y: -1}.Normalize(), game.InputDirection(ks))
}

func TestEditName(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		typed     string
		backspace bool
		want      string
	}{
		{"append", "Ace", "r", false, "Acer"},
		{"backspace", "Ace", "", true, "Ac"},
		{"backspace empty", "", "", true, ""},
		{"no leading space", "", " Z", false, "Z"},
		{"inner space kept", "A", " B", false, "A B"},
		{"control dropped", "A", "\t\x00B", false, "AB"},
		{"capped", "abcdefghijk", "xyz", false, "abcdefghijkx"},
		{"unicode", "Zoë", "!", false, "Zoë!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editName(tt.start, []rune(tt.typed), tt.backspace); got != tt.want {
				t.Fatalf("editName(%q, %q, %v) = %q, want %q", tt.start, tt.typed, tt.backspace, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "3:00", formatClock(180))
	assert.Equal(t, "2:59", formatClock(178.2))
	assert.Equal(t, "0:01", formatClock(0.01))
	assert.Equal(t, "0:00", formatClock(0))
	assert.Equal(t, "0:00", formatClock(-3))
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, fade(c, 1))
	assert.Equal(t, color.RGBA{}, fade(c, 0))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 127}, fade(c, 0.5))
	assert.Equal(t, c, fade(c, 3), "life above one is clamped")
}

func TestHealthFraction(t *testing.T) {
	assert.Equal(t, 0.25, healthFraction(&game.CharacterState{Health: 25, MaxHealth: 100}))
	assert.Equal(t, 0.0, healthFraction(&game.CharacterState{Health: -5, MaxHealth: 100}))
}

func TestResultText(t *testing.T) {
	res := game.Result{
		Winner: "Hero",
		Reason: game.ReasonScore,
		Standings: []game.Standing{
			{Name: "Hero", Kind: game.KindPlayer, Kills: 15, Deaths: 2},
			{Name: "Bot-1", Kind: game.KindBot, Kills: 4, Deaths: 9},
		},
	}
	out := resultText(res)
	assert.True(t, strings.HasPrefix(out, "Arena Blitz: Hero wins"))
	assert.Contains(t, out, "Bot-1")
}
