package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Vec2{0, 0}, Vec2{3, 4}), 1e-9)
	assert.InDelta(t, 0.0, Distance(Vec2{7, 7}, Vec2{7, 7}), 1e-9)
}

func TestVec2_Normalize(t *testing.T) {
	n := Vec2{X: 1, Y: 1}.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, n.X, 1e-9)

	assert.Equal(t, Vec2{}, Vec2{}.Normalize(), "zero vector stays zero")
}

func TestBearingAndFromAngle(t *testing.T) {
	a := Bearing(Vec2{10, 10}, Vec2{10, 20})
	assert.InDelta(t, math.Pi/2, a, 1e-9)

	v := FromAngle(a, 5)
	assert.InDelta(t, 0.0, v.X, 1e-9)
	assert.InDelta(t, 5.0, v.Y, 1e-9)
}

func TestCircleIntersectsRect(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 50, H: 50}
	tests := []struct {
		name   string
		c      Vec2
		radius float64
		want   bool
	}{
		{"centre inside", Vec2{125, 125}, 1, true},
		{"overlapping left edge", Vec2{90, 125}, 11, true},
		{"touching left edge", Vec2{90, 125}, 10, false},
		{"clear of corner", Vec2{90, 90}, 14, false},
		{"overlapping corner", Vec2{90, 90}, 15, true},
		{"zero radius on edge", Vec2{100, 125}, 0, false},
		{"zero radius inside", Vec2{125, 125}, 0, false},
		{"far away", Vec2{500, 500}, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircleIntersectsRect(tt.c, tt.radius, r); got != tt.want {
				t.Fatalf("CircleIntersectsRect(%v, %.0f) = %v, want %v", tt.c, tt.radius, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, r.Contains(Vec2{10, 10}))
	assert.False(t, r.Contains(Vec2{10.1, 5}))
}

func TestObstacleMap_CopiesInput(t *testing.T) {
	rects := []Rect{{X: 0, Y: 0, W: 10, H: 10}}
	m := NewObstacleMap(rects)
	rects[0].X = 1000

	assert.True(t, m.Collides(Vec2{5, 5}, 1))
	assert.Equal(t, 1, m.Len())

	var nilMap *ObstacleMap
	assert.False(t, nilMap.Collides(Vec2{5, 5}, 100))
}

func TestEntity_Alive(t *testing.T) {
	bot := &Entity{Kind: KindBot, Character: &CharacterState{Health: 1}}
	assert.True(t, bot.Alive())
	bot.Character.Health = 0
	assert.False(t, bot.Alive())
	assert.False(t, (&Entity{Kind: KindProjectile, Projectile: &ProjectileState{}}).Alive())
}

func TestArenaBounds_EdgeIsInside(t *testing.T) {
	tm := NewTestMatch(WithNoObstacles(), WithBotCount(0), WithCharacterAt("Hero", 800, 450))
	p := tm.SpawnProjectile(tm.Player(), Vec2{X: 1590, Y: 100}, Vec2{X: 100})
	tm.Step(0.1)
	assert.Len(t, tm.Projectiles(), 1, "a shot exactly on the boundary is still inside")
	assert.InDelta(t, 1600, p.Pos.X, 1e-9)
	tm.Step(0.1)
	assert.Empty(t, tm.Projectiles())
}
