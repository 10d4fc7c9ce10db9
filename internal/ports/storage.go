package ports

import (
	"context"

	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/engine"
)

// RunRecord es una ejecución de torneo persistida.
type RunRecord struct {
	ID      string
	RunAt   string // RFC3339
	Rounds  int
	Noise   float64
	Seed    int64
	Summary domain.Summary
}

// Storage persiste resúmenes de torneo para el reporte histórico. Es salida
// en la frontera del analizador, no estado de estrategia entre ejecuciones.
type Storage interface {
	// SaveRun persiste el resumen con la configuración que lo produjo.
	SaveRun(ctx context.Context, cfg engine.Config, summary domain.Summary) (string, error)

	// RecentRuns devuelve las últimas n ejecuciones, la más nueva primero.
	RecentRuns(ctx context.Context, n int) ([]RunRecord, error)

	Close() error
}
