package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/arena-blitz/internal/config"
	"github.com/Garsondee/arena-blitz/internal/game"
	"github.com/Garsondee/arena-blitz/internal/sound"
	"github.com/Garsondee/arena-blitz/internal/view"
)

func main() {
	settings, err := config.Load()
	logger := settings.NewLogger(os.Stderr, "arena")
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

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
		logger.Fatal("create engine", "err", err)
	}

	ebiten.SetWindowTitle("Arena Blitz")
	ebiten.SetWindowSize(int(settings.Game.Width), int(settings.Game.Height))
	if err := ebiten.RunGame(view.New(eng, clock, settings.PlayerName, logger)); err != nil {
		logger.Error("run game", "err", err)
	}
}
