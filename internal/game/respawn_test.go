package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespawn_StaysInsideArena(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		tm := NewTestMatch(WithMatchSeed(seed))
		e := tm.Engine
		for _, ent := range e.entities {
			if !ent.IsCharacter() {
				continue
			}
			for i := 0; i < 25; i++ {
				ent.Character.Health = -30
				ent.Vel = Vec2{X: 5, Y: 5}
				e.respawn(ent)

				r := ent.Radius
				if ent.Pos.X < r || ent.Pos.X > e.bounds.W-r || ent.Pos.Y < r || ent.Pos.Y > e.bounds.H-r {
					t.Fatalf("seed %d: %s respawned out of bounds at %v", seed, ent.Character.Name, ent.Pos)
				}
				if ent.Character.Health != ent.Character.MaxHealth {
					t.Fatalf("seed %d: health %.0f after respawn", seed, ent.Character.Health)
				}
				if ent.Vel != (Vec2{}) {
					t.Fatalf("seed %d: velocity %v after respawn", seed, ent.Vel)
				}
			}
		}
	}
}

func TestRespawn_AvoidsObstaclesWhenPossible(t *testing.T) {
	// One big block leaves plenty of free space.
	tm := NewTestMatch(WithNoObstacles(), WithObstacle(600, 300, 400, 300), WithBotCount(0))
	e := tm.Engine
	p := tm.Player()
	for i := 0; i < 50; i++ {
		e.respawn(p)
		require.False(t, e.obstacles.Collides(p.Pos, p.Radius), "spawned inside obstacle at %v", p.Pos)
	}
}

func TestRespawn_BestEffortWhenArenaBlocked(t *testing.T) {
	tm := NewTestMatch(
		WithArena(300, 300),
		WithNoObstacles(),
		WithObstacle(0, 0, 300, 300),
		WithBotCount(0),
	)
	p := tm.Player()
	assert.InDelta(t, 100, p.Character.Health, 1e-9)
	assert.GreaterOrEqual(t, p.Pos.X, spawnMargin)
	assert.LessOrEqual(t, p.Pos.X, 300-spawnMargin)
	assert.Equal(t, 1, tm.Engine.Log().CountCategory(LogRespawn, "placed"))
}

func TestRespawn_DeadCharacterRespawnsOnNextTick(t *testing.T) {
	tm := NewTestMatch(WithNoObstacles(), WithBotCount(2))
	tm.Freeze()
	bot := tm.Character("Bot-2")
	bot.Character.Health = 0
	bot.Character.Deaths = 1

	tm.Step(1.0 / 60)

	assert.Equal(t, 100.0, bot.Character.Health)
	assert.Equal(t, 1, bot.Character.Deaths, "respawn does not touch the score")
}
