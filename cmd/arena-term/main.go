package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/arena-blitz/internal/config"
	"github.com/Garsondee/arena-blitz/internal/game"
	"github.com/Garsondee/arena-blitz/internal/sound"
	"github.com/Garsondee/arena-blitz/internal/term"
)

const frameInterval = 16 * time.Millisecond

func main() {
	settings, err := config.Load()
	if err != nil {
		settings.NewLogger(os.Stderr, "arena-term").Fatal("load config", "err", err)
	}
	// The screen owns the terminal until Fini, so logs are held until then.
	var logs bytes.Buffer
	logger := settings.NewLogger(&logs, "arena-term")
	defer func() { _, _ = os.Stderr.Write(logs.Bytes()) }()

	clock := game.NewWallClock()
	synth := sound.New(sound.Muted(settings.Mute), sound.WithLogger(logger))
	defer synth.Close()

	eng, err := game.NewEngine(settings.Game,
		game.WithSeed(settings.RandSeed(time.Now())),
		game.WithClock(clock),
		game.WithSound(synth),
		game.WithLogger(logger),
	)
	if err != nil {
		logger.SetOutput(os.Stderr)
		logger.Fatal("create engine", "err", err)
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		_, _ = os.Stderr.Write(logs.Bytes())
		logger.SetOutput(os.Stderr)
		logger.Fatal("open terminal", "err", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.New(screen, eng, clock, settings.PlayerName, logger)
	if err := app.Run(ctx, frameInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("terminal loop", "err", err)
	}
	if res, ok := eng.Result(); ok {
		logger.Info("last match", "summary", res.Summary())
	}
	screen.Fini()
}
