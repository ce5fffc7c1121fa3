//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"gol-canvas/internal/app"
	"gol-canvas/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Default()
	if err != nil {
		slog.Error("failed to load defaults", "error", err)
		os.Exit(1)
	}
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "path to a YAML config file (empty = defaults)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Merge(*configPath, flag.CommandLine); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	game := app.New(session, logger)

	ebiten.SetWindowTitle("gol-canvas")
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(game)
	game.Close()
	if err := session.Close(); err != nil {
		logger.Error("failed to close session", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		logger.Error("game exited", "error", runErr)
		os.Exit(1)
	}
}
