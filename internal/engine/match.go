package engine

// match.go — un match de longitud fija entre dos estrategias.
//
// Por ronda: decidir, validar, aplicar ruido, puntuar, registrar, notificar.
// Las estrategias nunca ven la jugada pre-ruido: el ruido modela error de
// ejecución, no de intención.

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/strategy"
)

// Match juega un único match entre dos estrategias.
type Match struct {
	p1     strategy.Strategy
	p2     strategy.Strategy
	rounds int
	noise  float64
	rng    *rand.Rand

	score1  int
	score2  int
	history []domain.MovePair
}

// NewMatch construye un match. rng puede ser nil solo si noise == 0.
func NewMatch(p1, p2 strategy.Strategy, rounds int, noise float64, rng *rand.Rand) (*Match, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("engine.NewMatch: rounds %d: %w", rounds, domain.ErrInvalidConfig)
	}
	if noise < 0 || noise >= 1 {
		return nil, fmt.Errorf("engine.NewMatch: noise %.3f outside [0,1): %w", noise, domain.ErrInvalidConfig)
	}
	if noise > 0 && rng == nil {
		return nil, fmt.Errorf("engine.NewMatch: noise > 0 requires a random source: %w", domain.ErrInvalidConfig)
	}
	return &Match{
		p1:      p1,
		p2:      p2,
		rounds:  rounds,
		noise:   noise,
		rng:     rng,
		history: make([]domain.MovePair, 0, rounds),
	}, nil
}

// Play ejecuta exactamente rounds rondas y devuelve las puntuaciones
// acumuladas finales. Una jugada inválida aborta el match sin puntuación.
func (m *Match) Play(ctx context.Context) (int, int, error) {
	for round := 0; round < m.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return 0, 0, fmt.Errorf("engine.Match.Play: round %d: %w", round+1, err)
		}

		move1 := m.p1.DecideMove()
		move2 := m.p2.DecideMove()

		if err := move1.Validate(); err != nil {
			return 0, 0, fmt.Errorf("engine.Match.Play: %s round %d: %w", m.p1.Name(), round+1, err)
		}
		if err := move2.Validate(); err != nil {
			return 0, 0, fmt.Errorf("engine.Match.Play: %s round %d: %w", m.p2.Name(), round+1, err)
		}

		// Ruido: flips independientes por jugador, en orden fijo
		// (p1 y luego p2) para que la semilla reproduzca los draws.
		if m.noise > 0 {
			if m.rng.Float64() < m.noise {
				move1 = move1.Flip()
			}
			if m.rng.Float64() < m.noise {
				move2 = move2.Flip()
			}
		}

		pay1, pay2 := domain.Payoff(move1, move2)
		m.score1 += pay1
		m.score2 += pay2

		m.history = append(m.history, domain.MovePair{P1: move1, P2: move2})

		m.p1.UpdateHistory(move1, move2)
		m.p2.UpdateHistory(move2, move1)
	}

	return m.score1, m.score2, nil
}

// Stats devuelve las tasas derivadas del match jugado.
func (m *Match) Stats() domain.MatchStats {
	coop1, coop2 := 0, 0
	for _, pair := range m.history {
		if pair.P1 == domain.Cooperate {
			coop1++
		}
		if pair.P2 == domain.Cooperate {
			coop2++
		}
	}

	rounds := float64(m.rounds)
	return domain.MatchStats{
		Score1:    m.score1,
		Score2:    m.score2,
		AvgScore1: float64(m.score1) / rounds,
		AvgScore2: float64(m.score2) / rounds,
		CoopRate1: float64(coop1) / rounds,
		CoopRate2: float64(coop2) / rounds,
		Rounds:    m.rounds,
	}
}

// History devuelve los pares de jugadas post-ruido, en orden de ronda.
func (m *Match) History() []domain.MovePair {
	return m.history
}
