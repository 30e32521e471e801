package game

// Movement bindings: each direction accepts a letter key and an arrow key.
var (
	keysUp    = []string{"w", "ArrowUp"}
	keysDown  = []string{"s", "ArrowDown"}
	keysLeft  = []string{"a", "ArrowLeft"}
	keysRight = []string{"d", "ArrowRight"}
)

func anyHeld(keys KeySet, names []string) bool {
	for _, n := range names {
		if keys.Has(n) {
			return true
		}
	}
	return false
}

// InputDirection returns the unit movement direction for the held keys.
// Opposing keys cancel and diagonals are normalized.
func InputDirection(keys KeySet) Vec2 {
	var d Vec2
	if anyHeld(keys, keysUp) {
		d.Y--
	}
	if anyHeld(keys, keysDown) {
		d.Y++
	}
	if anyHeld(keys, keysLeft) {
		d.X--
	}
	if anyHeld(keys, keysRight) {
		d.X++
	}
	return d.Normalize()
}

// updatePlayer moves the player from the held keys and faces the pointer.
func (e *Engine) updatePlayer(ent *Entity, dt float64) {
	ent.Vel = InputDirection(e.input.keys).Scale(ent.Character.Speed)
	e.moveCharacter(ent, dt)
	ent.Rotation = Bearing(ent.Pos, e.input.pointer)
}
