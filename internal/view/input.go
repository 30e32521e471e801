package view

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/arena-blitz/internal/game"
)

const maxNameLen = 12

// keyBindings maps physical keys to the control names the engine reads.
var keyBindings = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyArrowUp, "ArrowUp"},
	{ebiten.KeyArrowDown, "ArrowDown"},
	{ebiten.KeyArrowLeft, "ArrowLeft"},
	{ebiten.KeyArrowRight, "ArrowRight"},
}

// heldKeys returns the control names whose keys pressed reports as down.
func heldKeys(pressed func(ebiten.Key) bool) game.KeySet {
	ks := game.KeySet{}
	for _, b := range keyBindings {
		if pressed(b.key) {
			ks[b.name] = struct{}{}
		}
	}
	return ks
}

// editName applies typed characters and backspaces to a name field.
// Only printable characters are kept and the name is capped at maxNameLen runes.
func editName(name string, typed []rune, backspace bool) string {
	r := []rune(name)
	if backspace && len(r) > 0 {
		r = r[:len(r)-1]
	}
	for _, c := range typed {
		if len(r) >= maxNameLen {
			break
		}
		if unicode.IsPrint(c) && !(c == ' ' && len(r) == 0) {
			r = append(r, c)
		}
	}
	return string(r)
}

// playerName returns the name to start a match with.
func playerName(input string) string {
	return strings.TrimSpace(input)
}
