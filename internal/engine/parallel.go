package engine

// parallel.go — worker pool para jugar los matches del torneo en paralelo.
//
// Los matches son independientes entre sí, pero la fuente aleatoria
// compartida del modo secuencial es una dependencia de orden implícita. Aquí
// cada match recibe su propio sub-stream (semilla base + índice del roster),
// así el resultado no depende del número de workers.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

// RunParallel juega un match por oponente usando un worker pool. Los
// resultados se pliegan en orden de roster, igual que en Run. Si workers
// <= 0 usa runtime.NumCPU().
//
// No produce el mismo Summary que Run con la misma semilla (el
// particionado del rng difiere), pero sí es reproducible consigo mismo.
func (t *Tournament) RunParallel(ctx context.Context, workers int) (domain.Summary, error) {
	// El roster de plantilla solo aporta longitud y orden; cada worker
	// reconstruye el suyo con el rng de su match.
	probe := t.newRoster(rand.New(rand.NewSource(t.cfg.Seed)))
	if len(probe) == 0 {
		return domain.Summary{}, fmt.Errorf("engine.Tournament.RunParallel: empty roster: %w", domain.ErrInvalidConfig)
	}
	n := len(probe)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	slog.Info("tournament starting (parallel)",
		"opponents", n,
		"rounds", t.cfg.Rounds,
		"noise", t.cfg.Noise,
		"seed", t.cfg.Seed,
		"workers", workers,
	)

	type outcome struct {
		record domain.MatchRecord
		err    error
	}

	workCh := make(chan int, n)
	results := make([]outcome, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				rng := rand.New(rand.NewSource(t.cfg.Seed + int64(idx)))
				roster := t.newRoster(rng)
				record, err := t.playOne(ctx, roster[idx], rng)
				results[idx] = outcome{record: record, err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	records := make([]domain.MatchRecord, 0, n)
	for _, out := range results {
		if out.err != nil {
			return domain.Summary{}, fmt.Errorf("engine.Tournament.RunParallel: %w", out.err)
		}
		records = append(records, out.record)
	}

	return summarize(records), nil
}
