package strategy

// opponents.go — el roster de referencia: siete variantes sin más estado que
// sus historiales. Cada DecideMove es función pura del historial propio.

import (
	"math/rand"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

// AlwaysCooperate coopera incondicionalmente.
type AlwaysCooperate struct{ histories }

func (*AlwaysCooperate) Name() string            { return "AlwaysCooperate" }
func (*AlwaysCooperate) DecideMove() domain.Move { return domain.Cooperate }

// AlwaysDefect traiciona incondicionalmente.
type AlwaysDefect struct{ histories }

func (*AlwaysDefect) Name() string            { return "AlwaysDefect" }
func (*AlwaysDefect) DecideMove() domain.Move { return domain.Defect }

// TitForTat abre cooperando y después copia la última jugada del oponente.
type TitForTat struct{ histories }

func (*TitForTat) Name() string { return "TitForTat" }

func (s *TitForTat) DecideMove() domain.Move {
	last, ok := s.lastOpponent()
	if !ok {
		return domain.Cooperate
	}
	return last
}

// TitForTwoTats solo traiciona si el oponente traicionó las dos últimas
// rondas; con menos de dos rondas de historial siempre coopera.
type TitForTwoTats struct{ histories }

func (*TitForTwoTats) Name() string { return "TitForTwoTats" }

func (s *TitForTwoTats) DecideMove() domain.Move {
	n := len(s.opponent)
	if n < 2 {
		return domain.Cooperate
	}
	if s.opponent[n-1] == domain.Defect && s.opponent[n-2] == domain.Defect {
		return domain.Defect
	}
	return domain.Cooperate
}

// Grudger coopera hasta la primera traición y después traiciona para
// siempre. Irreversible: la cooperación posterior del oponente no lo ablanda.
type Grudger struct{ histories }

func (*Grudger) Name() string { return "Grudger" }

func (s *Grudger) DecideMove() domain.Move {
	for _, m := range s.opponent {
		if m == domain.Defect {
			return domain.Defect
		}
	}
	return domain.Cooperate
}

// Random juega 50/50 usando una fuente pseudoaleatoria inyectada
// explícitamente — nunca el estado global, para que una semilla fija haga
// todo el torneo determinista.
type Random struct {
	histories
	rng *rand.Rand
}

// NewRandom crea la estrategia aleatoria con su fuente.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (*Random) Name() string { return "Random" }

func (s *Random) DecideMove() domain.Move {
	if s.rng.Float64() < 0.5 {
		return domain.Cooperate
	}
	return domain.Defect
}

// Suspicious abre traicionando y después copia al oponente.
type Suspicious struct{ histories }

func (*Suspicious) Name() string { return "Suspicious" }

func (s *Suspicious) DecideMove() domain.Move {
	last, ok := s.lastOpponent()
	if !ok {
		return domain.Defect
	}
	return last
}

// DefaultRoster devuelve el roster de referencia completo, en el orden
// canónico. El orden importa: con una fuente aleatoria compartida,
// reordenarlo cambia los draws y por tanto los resultados individuales.
func DefaultRoster(rng *rand.Rand) []Strategy {
	return []Strategy{
		&AlwaysCooperate{},
		&AlwaysDefect{},
		&TitForTat{},
		&TitForTwoTats{},
		&Grudger{},
		NewRandom(rng),
		&Suspicious{},
	}
}

// RosterByNames arma un roster a partir de nombres de config, respetando el
// orden dado. Nombres desconocidos devuelven false.
func RosterByNames(names []string, rng *rand.Rand) ([]Strategy, bool) {
	roster := make([]Strategy, 0, len(names))
	for _, name := range names {
		var s Strategy
		switch name {
		case "AlwaysCooperate":
			s = &AlwaysCooperate{}
		case "AlwaysDefect":
			s = &AlwaysDefect{}
		case "TitForTat":
			s = &TitForTat{}
		case "TitForTwoTats":
			s = &TitForTwoTats{}
		case "Grudger":
			s = &Grudger{}
		case "Random":
			s = NewRandom(rng)
		case "Suspicious":
			s = &Suspicious{}
		default:
			return nil, false
		}
		roster = append(roster, s)
	}
	return roster, true
}
