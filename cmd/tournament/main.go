package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/ipdbot/config"
	"github.com/alejandrodnm/ipdbot/internal/adapters/notify"
	"github.com/alejandrodnm/ipdbot/internal/adapters/storage"
	"github.com/alejandrodnm/ipdbot/internal/analysis"
	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/engine"
	"github.com/alejandrodnm/ipdbot/internal/ports"
	"github.com/alejandrodnm/ipdbot/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	rounds := flag.Int("rounds", 0, "rounds per match (overrides config)")
	noise := flag.Float64("noise", -1, "noise probability in [0,1) (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	table := flag.Bool("table", false, "print full tables + analysis (default: compact 1-line)")
	jsonOut := flag.String("json", "", "export full analysis as JSON to the given path")
	sweep := flag.Bool("sweep", false, "run the tournament across a ladder of noise levels")
	parallel := flag.Bool("parallel", false, "play matches in a worker pool (per-match seeds)")
	hist := flag.Bool("hist", false, "print recent stored runs and exit")
	noStore := flag.Bool("no-store", false, "skip persisting the run")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *rounds > 0 {
		cfg.Tournament.Rounds = *rounds
	}
	if *noise >= 0 {
		cfg.Tournament.Noise = *noise
	}
	if *seed != 0 {
		cfg.Tournament.Seed = *seed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console := notify.NewConsole(*table)

	if *hist {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
		runHistory(ctx, store, console)
		return
	}

	tournCfg := engine.Config{
		Rounds: cfg.Tournament.Rounds,
		Noise:  cfg.Tournament.Noise,
		Seed:   cfg.Tournament.Seed,
	}
	rosterFn, ok := rosterFactory(cfg.Tournament.Opponents)
	if !ok {
		slog.Error("unknown opponent in roster", "opponents", cfg.Tournament.Opponents)
		os.Exit(1)
	}

	slog.Info("ipdbot starting",
		"config", *configPath,
		"rounds", tournCfg.Rounds,
		"noise", tournCfg.Noise,
		"seed", tournCfg.Seed,
		"opponents", len(cfg.Tournament.Opponents),
	)

	if *sweep {
		runSweep(ctx, tournCfg, rosterFn, console)
		return
	}

	tournament, err := engine.NewTournament(tournCfg, newEngine, rosterFn)
	if err != nil {
		slog.Error("invalid tournament configuration", "err", err)
		os.Exit(1)
	}

	summary := runTournament(ctx, tournament, *parallel)

	var notifier ports.Notifier = console
	if err := notifier.Notify(ctx, summary); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if *jsonOut != "" {
		if _, err := analysis.New(summary).Export(*jsonOut); err != nil {
			slog.Error("export failed", "err", err, "path", *jsonOut)
			os.Exit(1)
		}
		slog.Info("analysis exported", "path", *jsonOut)
	}

	if !*noStore {
		persistRun(ctx, cfg.Storage.DSN, tournCfg, summary)
	}

	slog.Info("ipdbot finished",
		"total_score", summary.TotalScore,
		"wins", summary.Wins,
		"losses", summary.Losses,
	)
}

// runTournament juega el torneo en el modo pedido y aborta el proceso si la
// simulación falla: no hay recuperación parcial, un match inválido invalida
// toda la ejecución.
func runTournament(ctx context.Context, t *engine.Tournament, parallel bool) domain.Summary {
	var (
		summary domain.Summary
		err     error
	)
	if parallel {
		summary, err = t.RunParallel(ctx, 0)
	} else {
		summary, err = t.Run(ctx)
	}
	if err != nil {
		slog.Error("tournament aborted", "err", err)
		os.Exit(1)
	}
	return summary
}

func persistRun(ctx context.Context, dsn string, cfg engine.Config, summary domain.Summary) {
	store, err := storage.NewSQLiteStorage(dsn)
	if err != nil {
		slog.Warn("failed to open storage, skipping persist", "err", err, "dsn", dsn)
		return
	}
	defer store.Close()

	runID, err := store.SaveRun(ctx, cfg, summary)
	if err != nil {
		slog.Warn("storage error", "err", err)
		return
	}
	slog.Info("run stored", "run_id", runID)
}

func runHistory(ctx context.Context, store ports.Storage, console *notify.Console) {
	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		slog.Error("failed to load history", "err", err)
		os.Exit(1)
	}
	console.PrintHistory(runs)
}

// newEngine es la factory del motor bajo evaluación: instancia fresca por
// match, nunca compartida.
func newEngine() strategy.Strategy {
	return strategy.NewDharmaNiti()
}

// rosterFactory valida los nombres una vez y devuelve la factory que arma el
// roster con la fuente aleatoria de cada ejecución.
func rosterFactory(names []string) (engine.RosterFactory, bool) {
	if _, ok := strategy.RosterByNames(names, nil); !ok {
		return nil, false
	}
	return func(rng *rand.Rand) []strategy.Strategy {
		roster, _ := strategy.RosterByNames(names, rng)
		return roster
	}, true
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
