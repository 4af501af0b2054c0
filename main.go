package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (hot reload, snapshot copy, verbose logs)")
	always := flag.Bool("always", false, "force the encounter to be always active")
	specName := flag.String("spec", "", "encounter spec in prefabs/ (defaults to encounter.yaml)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("rendezvous")

	game, err := NewGame(gameOptions{debug: *debug, alwaysActive: *always, specName: *specName}, logger)
	if err != nil {
		logger.Error("start game", "err", err)
		os.Exit(1)
	}
	err = ebiten.RunGame(game)
	_ = game.Close()
	if err != nil {
		logger.Error("run game", "err", err)
		os.Exit(1)
	}
}
