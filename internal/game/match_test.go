package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScoreToWin = 0

	eng, err := NewEngine(cfg)
	require.Error(t, err)
	assert.Nil(t, eng)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestEngine_StartsInMenu(t *testing.T) {
	eng, err := NewEngine(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StateMenu, eng.State())
	eng.HandleInput(NewKeySet("d"), Vec2{}, true)
	eng.Update(1e6)
	assert.Empty(t, eng.Snapshot().Entities, "menu ignores input and ticks")
	assert.Zero(t, eng.Tick())
}

func TestEngine_StartSpawnsRoster(t *testing.T) {
	tm := NewTestMatch(WithPlayerName(""))
	e := tm.Engine

	assert.Equal(t, StatePlaying, e.State())
	assert.NotEmpty(t, e.MatchID())
	assert.InDelta(t, 180, e.TimeLeft(), 1e-9)
	assert.Equal(t, 1, tm.Sounds.Count(CueInit))

	chars := e.Snapshot().Characters()
	require.Len(t, chars, 6)
	assert.Equal(t, KindPlayer, chars[0].Kind)
	assert.Equal(t, "Hero", chars[0].Character.Name)
	assert.Equal(t, 200.0, chars[0].Character.FireRate)
	assert.Equal(t, 300.0, chars[0].Character.Speed)
	assert.Equal(t, 0, chars[0].Character.TeamID)
	for i, c := range chars[1:] {
		assert.Equal(t, KindBot, c.Kind)
		assert.Equal(t, "Bot-"+string(rune('1'+i)), c.Character.Name)
		assert.Equal(t, 400.0, c.Character.FireRate)
		assert.Equal(t, 260.0, c.Character.Speed)
		assert.Equal(t, 1, c.Character.TeamID)
	}

	seen := map[EntityID]bool{}
	for _, c := range chars {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestEngine_WinByScore(t *testing.T) {
	tm, player, bot := duel(t, WithScoreToWin(3))
	player.Character.Kills = 2
	bot.Character.Health = 25

	tm.SpawnProjectile(player, player.Pos, Vec2{X: 800})
	tm.Step(0.05)

	assert.Equal(t, StateGameOver, tm.Engine.State())
	assert.Equal(t, []string{"Hero"}, tm.Winners)

	res, ok := tm.Engine.Result()
	require.True(t, ok)
	assert.Equal(t, ReasonScore, res.Reason)
	assert.Equal(t, "Hero", res.Winner)
	assert.True(t, res.PlayerWon())
	require.Len(t, res.Standings, 2)
	assert.Equal(t, "Hero", res.Standings[0].Name)
	assert.Equal(t, 3, res.Standings[0].Kills)
}

func TestEngine_BotCanWin(t *testing.T) {
	tm, player, bot := duel(t, WithScoreToWin(1))
	player.Character.Health = 25

	tm.SpawnProjectile(bot, bot.Pos, Vec2{X: -800})
	tm.Step(0.05)

	assert.Equal(t, []string{"Bot-1"}, tm.Winners)
	res, _ := tm.Engine.Result()
	assert.False(t, res.PlayerWon())
}

func TestEngine_TimeLimit(t *testing.T) {
	tm := NewTestMatch(WithDuration(180), WithBotCount(2))
	tm.Freeze()

	n := tm.RunUntil(func(tm *TestMatch) bool {
		return tm.Engine.State() == StateGameOver
	}, 1805, 0.1)
	require.Positive(t, n)
	assert.InDelta(t, 1800, n, 1)

	assert.Equal(t, []string{"Time Limit"}, tm.Winners)
	assert.Equal(t, 0.0, tm.Engine.TimeLeft())
	res, ok := tm.Engine.Result()
	require.True(t, ok)
	assert.Equal(t, ReasonTimeLimit, res.Reason)
	assert.InDelta(t, 180, res.Duration, 1e-6)
}

func TestEngine_DeltaIsCapped(t *testing.T) {
	tm := NewTestMatch(WithNoObstacles(), WithBotCount(0), WithCharacterAt("Hero", 100, 100))
	tm.Hold("d")

	tm.Step(5) // a stalled frame
	assert.InDelta(t, 179.9, tm.Engine.TimeLeft(), 1e-9)
	assert.InDelta(t, 130, tm.Player().Pos.X, 1e-9)

	// A clock running backwards is treated as no time at all.
	tm.Clock.Advance(-1000)
	tm.Engine.Update(tm.Clock.NowMillis())
	assert.InDelta(t, 179.9, tm.Engine.TimeLeft(), 1e-9)
	assert.InDelta(t, 130, tm.Player().Pos.X, 1e-9)
}

func TestEngine_ZeroDeltaIsIdempotent(t *testing.T) {
	tm := NewTestMatch(WithBotCount(3))
	tm.Freeze()
	tm.Hold("w", "d")
	tm.Step(0.1)

	before := tm.Engine.Snapshot()
	tm.Engine.Update(tm.Clock.NowMillis())
	after := tm.Engine.Snapshot()

	assert.Equal(t, before.TimeLeft, after.TimeLeft)
	require.Equal(t, len(before.Characters()), len(after.Characters()))
	for i, b := range before.Characters() {
		a := after.Characters()[i]
		assert.Equal(t, b.Pos, a.Pos, "%s moved", b.Character.Name)
		assert.Equal(t, b.Character.Health, a.Character.Health)
		assert.Equal(t, b.Character.Kills, a.Character.Kills)
	}
}

func TestEngine_GameOverIsTerminalUntilRestart(t *testing.T) {
	tm, player, bot := duel(t, WithScoreToWin(1))
	tm.SpawnProjectile(player, player.Pos, Vec2{X: 800})
	bot.Character.Health = 1
	tm.Step(0.05)
	require.Equal(t, StateGameOver, tm.Engine.State())

	firstID := tm.Engine.MatchID()
	tick := tm.Engine.Tick()
	tm.RunTicks(10, 0.1)
	assert.Equal(t, tick, tm.Engine.Tick(), "no ticks after game over")
	assert.Len(t, tm.Winners, 1, "observer fires once per match")

	tm.Engine.Start("Again")
	assert.Equal(t, StatePlaying, tm.Engine.State())
	assert.NotEqual(t, firstID, tm.Engine.MatchID())
	_, ok := tm.Engine.Result()
	assert.False(t, ok)
	for _, c := range tm.Engine.Snapshot().Characters() {
		assert.Zero(t, c.Character.Kills)
		assert.Zero(t, c.Character.Deaths)
	}
	require.NotNil(t, tm.Character("Again"))
}

func TestEngine_HealthStaysInRange(t *testing.T) {
	tm := NewTestMatch(WithAutopilot(true), WithMatchSeed(11), WithScoreToWin(1000))
	for i := 0; i < 3600; i++ {
		tm.Step(1.0 / 60)
		for _, c := range tm.Engine.Snapshot().Characters() {
			h := c.Character.Health
			if h < 0 || h > c.Character.MaxHealth {
				t.Fatalf("tick %d: %s health %.1f out of range", i, c.Character.Name, h)
			}
		}
	}
}

func TestEngine_SeedsAreDeterministic(t *testing.T) {
	run := func() []Entity {
		tm := NewTestMatch(WithAutopilot(true), WithMatchSeed(42))
		tm.RunTicks(600, 1.0/60)
		return tm.Engine.Snapshot().Characters()
	}
	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Pos, b[i].Pos)
		assert.Equal(t, a[i].Character.Kills, b[i].Character.Kills)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	tm := NewTestMatch(WithBotCount(1))
	snap := tm.Engine.Snapshot()
	snap.Entities[0].Character.Health = -5
	snap.Entities[0].Pos = Vec2{X: -1, Y: -1}

	p := tm.Player()
	assert.Equal(t, 100.0, p.Character.Health)
	assert.NotEqual(t, Vec2{X: -1, Y: -1}, p.Pos)
}

func TestStandings_Order(t *testing.T) {
	tm := NewTestMatch(WithBotCount(3))
	tm.Character("Bot-1").Character.Kills = 2
	tm.Character("Bot-2").Character.Kills = 4
	tm.Character("Bot-3").Character.Kills = 2
	tm.Character("Bot-3").Character.Deaths = 0
	tm.Character("Bot-1").Character.Deaths = 3

	got := tm.Engine.Standings()
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Bot-2", "Bot-3", "Bot-1", "Hero"}, names)
	assert.Contains(t, Scoreboard(got), "Bot-2")
}
