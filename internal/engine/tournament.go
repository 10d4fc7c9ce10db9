package engine

// tournament.go — un match por oponente del roster, con motor de decisión
// fresco por match. El resumen se congela al terminar el loop.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/strategy"
)

// Config contiene la configuración del torneo.
type Config struct {
	Rounds int
	Noise  float64
	Seed   int64
}

// DefaultConfig devuelve la configuración canónica: 200 rondas, sin ruido,
// semilla fija para reproducibilidad.
func DefaultConfig() Config {
	return Config{Rounds: 200, Noise: 0, Seed: 42}
}

// Validate rechaza la configuración antes de jugar nada.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("engine: rounds %d: %w", c.Rounds, domain.ErrInvalidConfig)
	}
	if c.Noise < 0 || c.Noise >= 1 {
		return fmt.Errorf("engine: noise %.3f outside [0,1): %w", c.Noise, domain.ErrInvalidConfig)
	}
	return nil
}

// EngineFactory produce una instancia fresca del motor de decisión por
// match. Nunca una instancia mutable compartida: el estado no debe filtrarse
// entre oponentes.
type EngineFactory func() strategy.Strategy

// RosterFactory arma el roster ordenado de oponentes con la fuente
// pseudoaleatoria dada (la usa la estrategia Random).
type RosterFactory func(rng *rand.Rand) []strategy.Strategy

// Tournament itera el roster en orden y pliega los resultados en un Summary.
type Tournament struct {
	cfg       Config
	newEngine EngineFactory
	newRoster RosterFactory
}

// NewTournament crea el torneo con todas las dependencias inyectadas.
func NewTournament(cfg Config, newEngine EngineFactory, newRoster RosterFactory) (*Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if newEngine == nil || newRoster == nil {
		return nil, fmt.Errorf("engine.NewTournament: nil factory: %w", domain.ErrInvalidConfig)
	}
	return &Tournament{cfg: cfg, newEngine: newEngine, newRoster: newRoster}, nil
}

// Run juega el torneo secuencialmente con UNA fuente aleatoria compartida.
// El orden del roster es significativo: reordenarlo cambia los draws de
// ruido/Random de los matches siguientes. Con semilla y orden fijos, dos
// ejecuciones producen resúmenes bit-idénticos.
func (t *Tournament) Run(ctx context.Context) (domain.Summary, error) {
	rng := rand.New(rand.NewSource(t.cfg.Seed))
	roster := t.newRoster(rng)
	if len(roster) == 0 {
		return domain.Summary{}, fmt.Errorf("engine.Tournament.Run: empty roster: %w", domain.ErrInvalidConfig)
	}

	slog.Info("tournament starting",
		"opponents", len(roster),
		"rounds", t.cfg.Rounds,
		"noise", t.cfg.Noise,
		"seed", t.cfg.Seed,
	)

	records := make([]domain.MatchRecord, 0, len(roster))
	for _, opponent := range roster {
		record, err := t.playOne(ctx, opponent, rng)
		if err != nil {
			return domain.Summary{}, fmt.Errorf("engine.Tournament.Run: vs %s: %w", opponent.Name(), err)
		}
		records = append(records, record)

		slog.Debug("match finished",
			"opponent", record.Opponent,
			"our_score", record.OurScore,
			"opponent_score", record.OpponentScore,
			"won", record.Won,
		)
	}

	return summarize(records), nil
}

// playOne resetea el oponente, obtiene un motor fresco y juega un match.
func (t *Tournament) playOne(ctx context.Context, opponent strategy.Strategy, rng *rand.Rand) (domain.MatchRecord, error) {
	opponent.Reset()
	us := t.newEngine()

	match, err := NewMatch(us, opponent, t.cfg.Rounds, t.cfg.Noise, rng)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	ourScore, oppScore, err := match.Play(ctx)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	stats := match.Stats()
	return domain.MatchRecord{
		Opponent:        opponent.Name(),
		OurScore:        ourScore,
		OpponentScore:   oppScore,
		OurAvg:          stats.AvgScore1,
		OurCoop:         stats.CoopRate1,
		OppCoop:         stats.CoopRate2,
		Won:             ourScore > oppScore, // estricta: empate = derrota
		ScoreDifference: ourScore - oppScore,
	}, nil
}

// summarize congela los registros en el Summary del torneo.
func summarize(records []domain.MatchRecord) domain.Summary {
	s := domain.Summary{
		TotalMatches: len(records),
		Results:      records,
	}
	for _, r := range records {
		s.TotalScore += r.OurScore
		if r.Won {
			s.Wins++
		}
	}
	s.Losses = s.TotalMatches - s.Wins
	if s.TotalMatches > 0 {
		s.AverageScore = float64(s.TotalScore) / float64(s.TotalMatches)
		s.WinRate = float64(s.Wins) / float64(s.TotalMatches)
	}
	return s
}
