// Command gol-headless runs the simulation without a window, exporting
// per-generation statistics and an optional PNG of the final frame.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"

	"gol-canvas/internal/app"
	"gol-canvas/internal/config"
	"gol-canvas/internal/render"
	"gol-canvas/internal/telemetry"
)

func main() {
	cfg, err := config.Default()
	if err != nil {
		slog.Error("failed to load defaults", "error", err)
		os.Exit(1)
	}
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "path to a YAML config file (empty = defaults)")
	generations := flag.Int("generations", 100, "number of generations to compute")
	pngPath := flag.String("png", "", "write the final frame to this PNG file")
	snapshot := flag.String("write-config", "", "save the effective config to this YAML file")
	quiet := flag.Bool("quiet", false, "hide the progress bar")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := cfg.Merge(*configPath, flag.CommandLine); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if *snapshot != "" {
		if err := cfg.WriteYAML(*snapshot); err != nil {
			logger.Error("failed to save config", "error", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, logger, *generations, *pngPath, !*quiet); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, generations int, pngPath string, progress bool) error {
	session, err := app.NewSession(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("failed to close session", "error", err)
		}
	}()

	surface := render.NewImageSurface(cfg.Window.Width, cfg.Window.Height)
	if err := session.AttachSurface(surface); err != nil {
		return err
	}

	logger.Info("starting headless run",
		"generations", generations,
		"seed", cfg.Seed.Seed,
		"stats", cfg.Telemetry.CSV,
	)

	var onStep func(telemetry.GenerationStats)
	if progress {
		bar := pb.StartNew(generations)
		defer bar.Finish()
		onStep = func(telemetry.GenerationStats) { bar.Increment() }
	}
	if err := session.Run(generations, onStep); err != nil {
		return err
	}

	if pngPath != "" {
		if err := writePNG(pngPath, surface); err != nil {
			return err
		}
		logger.Info("wrote frame", "path", pngPath)
	}
	return nil
}

func writePNG(path string, surface *render.ImageSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}
