// Package config loads front-end settings from .env files and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Garsondee/arena-blitz/internal/game"
)

// Recognised environment keys.
const (
	KeyWidth      = "ARENA_WIDTH"
	KeyHeight     = "ARENA_HEIGHT"
	KeyBots       = "ARENA_BOTS"
	KeyDuration   = "ARENA_DURATION" // seconds, or a Go duration such as "3m"
	KeyScoreToWin = "ARENA_SCORE_TO_WIN"
	KeySeed       = "ARENA_SEED"
	KeyLogLevel   = "ARENA_LOG_LEVEL"
	KeyMute       = "ARENA_MUTE"
	KeyPlayerName = "ARENA_PLAYER_NAME"
)

var allKeys = []string{
	KeyWidth, KeyHeight, KeyBots, KeyDuration, KeyScoreToWin,
	KeySeed, KeyLogLevel, KeyMute, KeyPlayerName,
}

// Settings is everything a front-end needs to build an engine.
type Settings struct {
	Game       game.Config
	Seed       int64
	SeedSet    bool // false: callers seed from the wall clock
	LogLevel   log.Level
	Mute       bool
	PlayerName string
}

// Default returns the stock match with info logging and sound on.
func Default() Settings {
	return Settings{
		Game:     game.DefaultConfig(),
		LogLevel: log.InfoLevel,
	}
}

// Load reads the given .env files (default ".env"), then lets the process
// environment override them. Missing files are skipped.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	env := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Settings{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}
	for _, k := range allKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return FromMap(env)
}

// FromMap builds settings from key/value pairs on top of Default. Empty
// values are ignored. The resulting game config is validated.
func FromMap(env map[string]string) (Settings, error) {
	s := Default()
	var err error
	get := func(k string) (string, bool) {
		v := strings.TrimSpace(env[k])
		return v, v != ""
	}

	if v, ok := get(KeyWidth); ok {
		if s.Game.Width, err = parseFloat(KeyWidth, v); err != nil {
			return Settings{}, err
		}
	}
	if v, ok := get(KeyHeight); ok {
		if s.Game.Height, err = parseFloat(KeyHeight, v); err != nil {
			return Settings{}, err
		}
	}
	if v, ok := get(KeyBots); ok {
		if s.Game.BotCount, err = parseInt(KeyBots, v); err != nil {
			return Settings{}, err
		}
	}
	if v, ok := get(KeyDuration); ok {
		if s.Game.MatchDuration, err = parseSeconds(KeyDuration, v); err != nil {
			return Settings{}, err
		}
	}
	if v, ok := get(KeyScoreToWin); ok {
		if s.Game.ScoreToWin, err = parseInt(KeyScoreToWin, v); err != nil {
			return Settings{}, err
		}
	}
	if v, ok := get(KeySeed); ok {
		seed, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return Settings{}, fmt.Errorf("%s=%q: %w", KeySeed, v, perr)
		}
		s.Seed, s.SeedSet = seed, true
	}
	if v, ok := get(KeyLogLevel); ok {
		if s.LogLevel, err = log.ParseLevel(v); err != nil {
			return Settings{}, fmt.Errorf("%s=%q: %w", KeyLogLevel, v, err)
		}
	}
	if v, ok := get(KeyMute); ok {
		if s.Mute, err = strconv.ParseBool(v); err != nil {
			return Settings{}, fmt.Errorf("%s=%q: %w", KeyMute, v, err)
		}
	}
	if v, ok := get(KeyPlayerName); ok {
		s.PlayerName = v
	}

	if err := s.Game.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// NewLogger returns the shared front-end logger writing to w.
func (s Settings) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           s.LogLevel,
	})
}

// RandSeed returns the configured seed, or one derived from now.
func (s Settings) RandSeed(now time.Time) int64 {
	if s.SeedSet {
		return s.Seed
	}
	return now.UnixNano()
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return f, nil
}

func parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return n, nil
}

// parseSeconds accepts a plain number of seconds or a time.Duration string.
func parseSeconds(key, v string) (float64, error) {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return d.Seconds(), nil
}
