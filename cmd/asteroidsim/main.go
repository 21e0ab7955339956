package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"asteroid-sim/internal/loader"
	"asteroid-sim/internal/logger"
	"asteroid-sim/internal/physics"
	"asteroid-sim/internal/render"
	"asteroid-sim/internal/report"
	"asteroid-sim/internal/simconfig"
)

func main() {
	dataPath := flag.String("data", "asteroid.txt", "asteroid data file")
	configPath := flag.String("config", "config.yaml", "simulation config file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	quiet := flag.Bool("quiet", false, "only log errors")
	animate := flag.Bool("render", false, "play the simulation in a window after it finishes")
	flag.Parse()

	if err := run(*dataPath, *configPath, *logLevel, *quiet, *animate); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(dataPath, configPath, logLevel string, quiet, animate bool) error {
	log, err := logger.New(logLevel, quiet)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := simconfig.Load(configPath)
	if err != nil {
		return err
	}

	specs, err := loader.Load(dataPath)
	if err != nil {
		return err
	}
	bodies, err := loader.Bodies(specs, cfg.Irregularity, cfg.Seed)
	if err != nil {
		return err
	}
	log.Info("loaded asteroids", zap.Int("count", len(bodies)), zap.String("path", dataPath))

	world, err := physics.NewWorld(physics.Options{
		Timestep:             cfg.Timestep,
		MaxTicks:             cfg.MaxTicks(),
		PositionalCorrection: cfg.PositionalCorrection,
		Destructive:          cfg.Destructive,
	}, bodies, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var frames []physics.Frame
	for frame := range world.Frames(ctx) {
		frames = append(frames, frame)
	}
	if ctx.Err() != nil {
		log.Warn("simulation interrupted", zap.Int("ticks", len(frames)))
	}

	events := world.Log()
	report.PrintConsole(os.Stdout, events)
	if cfg.ReportPath != "" {
		if err := report.WriteFile(cfg.ReportPath, events); err != nil {
			return err
		}
		log.Info("wrote collision report", zap.String("path", cfg.ReportPath))
	}

	if animate {
		opts := render.DefaultOptions()
		opts.Seed = cfg.Seed
		opts.FrameDir = cfg.FrameDir
		render.Run(frames, events, opts)
	}
	return nil
}
