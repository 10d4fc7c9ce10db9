package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alejandrodnm/ipdbot/internal/adapters/notify"
	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/engine"
)

// sweepLevels es la escalera de ruido del modo --sweep: de entorno limpio a
// canal muy degradado.
var sweepLevels = []float64{0, 0.01, 0.02, 0.05, 0.10, 0.20}

// runSweep repite el torneo completo en cada nivel de ruido. Cada nivel usa
// una semilla derivada de la base para que los niveles no compartan stream y
// la escalera entera sea reproducible con la misma semilla.
func runSweep(ctx context.Context, base engine.Config, roster engine.RosterFactory, console *notify.Console) {
	summaries := make([]domain.Summary, 0, len(sweepLevels))

	for i, level := range sweepLevels {
		cfg := base
		cfg.Noise = level
		cfg.Seed = base.Seed + int64(i)*1000

		tournament, err := engine.NewTournament(cfg, newEngine, roster)
		if err != nil {
			slog.Error("invalid sweep configuration", "err", err, "noise", level)
			os.Exit(1)
		}

		summary, err := tournament.Run(ctx)
		if err != nil {
			slog.Error("sweep aborted", "err", err, "noise", level)
			os.Exit(1)
		}

		slog.Debug("sweep level done",
			"noise", level,
			"seed", cfg.Seed,
			"total_score", summary.TotalScore,
			"wins", summary.Wins,
		)
		summaries = append(summaries, summary)
	}

	console.PrintSweep(sweepLevels, summaries)
}
