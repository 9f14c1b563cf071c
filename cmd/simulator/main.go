package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/top5sim/config"
	"github.com/alejandrodnm/top5sim/internal/adapters/notify"
	"github.com/alejandrodnm/top5sim/internal/dataset"
	"github.com/alejandrodnm/top5sim/internal/predictions"
	"github.com/alejandrodnm/top5sim/internal/session"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	dataPath := flag.String("data", "", "season dataset YAML (overrides config; empty = baked-in)")
	seed := flag.Int64("seed", 0, "random seed for simulated results (overrides config)")
	weighted := flag.Bool("weighted", false, "simulate with the dataset probabilities instead of 1/3 each")
	refreshMode := flag.Bool("refresh", false, "fetch standings + fixtures from football-data.org and write a new dataset")
	history := flag.Bool("history", false, "list archived refresh runs and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	applyFlags(cfg, cliFlags{
		verbose:   *verbose,
		logFormat: *logFormat,
		dataPath:  *dataPath,
		seed:      *seed,
		weighted:  *weighted,
	})
	// stdout es de la tabla interactiva; los logs van a stderr.
	slog.SetDefault(slog.New(newLogHandler(os.Stderr, cfg.Log)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console := notify.NewConsole(*cfg.Simulation.Scoreline)

	switch {
	case *refreshMode:
		if err := runRefresh(ctx, cfg, console); err != nil {
			slog.Error("refresh failed", "err", err)
			os.Exit(1)
		}
		return
	case *history:
		if err := runHistory(ctx, cfg, console); err != nil {
			slog.Error("history failed", "err", err)
			os.Exit(1)
		}
		return
	}

	d, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		slog.Error("failed to load dataset", "err", err, "path", cfg.Data.Dataset)
		os.Exit(1)
	}

	slog.Info("top5sim starting",
		"season", d.Season,
		"fetched_at", d.FetchedAt,
		"fixtures", len(d.Fixtures),
		"mode", cfg.Simulation.Mode,
		"seed", cfg.Simulation.Seed,
	)

	store := predictions.NewStore(d.Fixtures, newPicker(cfg.Simulation))
	s := session.New(d.Clubs, store, console, *cfg.Simulation.Scoreline)

	if err := console.NotifyHelp(ctx); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if err := s.Run(ctx, os.Stdin); err != nil {
		slog.Error("session exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("top5sim stopped cleanly")
}

func newPicker(cfg config.SimulationConfig) predictions.Picker {
	if cfg.Mode == "weighted" {
		return predictions.NewWeightedPicker(cfg.Seed)
	}
	return predictions.NewUniformPicker(cfg.Seed)
}

// cliFlags son los flags que pisan valores de la config.
type cliFlags struct {
	verbose   bool
	logFormat string
	dataPath  string
	seed      int64
	weighted  bool
}

// applyFlags aplica solo los flags que se pasaron; el resto deja la config intacta.
func applyFlags(cfg *config.Config, f cliFlags) {
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.dataPath != "" {
		cfg.Data.Dataset = f.dataPath
	}
	if f.seed != 0 {
		cfg.Simulation.Seed = f.seed
	}
	if f.weighted {
		cfg.Simulation.Mode = "weighted"
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
