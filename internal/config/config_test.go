package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/arena-blitz/internal/game"
)

func TestFromMap_Defaults(t *testing.T) {
	s, err := FromMap(nil)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, s.Game.Width)
	assert.Equal(t, 5, s.Game.BotCount)
	assert.Equal(t, 180.0, s.Game.MatchDuration)
	assert.Equal(t, 15, s.Game.ScoreToWin)
	assert.Equal(t, log.InfoLevel, s.LogLevel)
	assert.False(t, s.SeedSet)
}

func TestFromMap_Overrides(t *testing.T) {
	s, err := FromMap(map[string]string{
		KeyWidth:      "1280",
		KeyHeight:     "720",
		KeyBots:       "8",
		KeyDuration:   "2m30s",
		KeyScoreToWin: "20",
		KeySeed:       "99",
		KeyLogLevel:   "debug",
		KeyMute:       "true",
		KeyPlayerName: " Ace ",
	})
	require.NoError(t, err)
	assert.Equal(t, 1280.0, s.Game.Width)
	assert.Equal(t, 720.0, s.Game.Height)
	assert.Equal(t, 8, s.Game.BotCount)
	assert.Equal(t, 150.0, s.Game.MatchDuration)
	assert.Equal(t, 20, s.Game.ScoreToWin)
	assert.Equal(t, int64(99), s.RandSeed(time.Now()))
	assert.Equal(t, log.DebugLevel, s.LogLevel)
	assert.True(t, s.Mute)
	assert.Equal(t, "Ace", s.PlayerName)
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad width", map[string]string{KeyWidth: "wide"}},
		{"bad bots", map[string]string{KeyBots: "1.5"}},
		{"bad duration", map[string]string{KeyDuration: "soon"}},
		{"bad seed", map[string]string{KeySeed: "x"}},
		{"bad level", map[string]string{KeyLogLevel: "loud"}},
		{"bad mute", map[string]string{KeyMute: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.env)
			require.Error(t, err)
		})
	}
}

func TestFromMap_InvalidGameConfig(t *testing.T) {
	_, err := FromMap(map[string]string{KeyScoreToWin: "0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, game.ErrInvalidConfig))
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.env")
	require.NoError(t, os.WriteFile(path, []byte("ARENA_BOTS=3\nARENA_PLAYER_NAME=FromFile\n"), 0o600))
	t.Setenv(KeyPlayerName, "FromEnv")

	s, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Game.BotCount)
	assert.Equal(t, "FromEnv", s.PlayerName)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	s := Default()
	s.LogLevel = log.WarnLevel
	l := s.NewLogger(&buf, "arena")

	l.Info("hidden")
	l.Warn("shown", "bots", 5)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "bots=5")
}
