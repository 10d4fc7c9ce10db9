package strategy

// dharma.go — DharmaNiti, la estrategia bajo evaluación.
//
// Cascada de reglas determinista sobre features del historial: tolerancia a
// ruido, represalia proporcional acotada, y perdón condicional. Los umbrales
// son constantes fijas derivadas offline; aquí no se ajusta nada en runtime.

import "github.com/alejandrodnm/ipdbot/internal/domain"

// Umbrales y ventanas del set defensivo (no mezclar con otros tunings:
// los parámetros se derivaron juntos y no son intercambiables).
const (
	cooperativeThreshold = 0.70 // indicador de cooperación fuerte
	betrayalThreshold    = 0.30 // indicador de comportamiento explotador
	noiseTolerance       = 2    // traiciones accidentales permitidas
	forgivenessWindow    = 5    // rondas de reforma requeridas
	retaliationCap       = 3    // tope de rondas de represalia
	probeEvery           = 3    // módulo del probe contra explotadores
)

// retaliationState es el compromiso de traicionar un número fijo de rondas.
// Solo lo muta la propia cascada; el perdón lo limpia.
type retaliationState struct {
	remaining int
	active    bool
}

// DharmaNiti mantiene más estado interno que los oponentes (rachas,
// traiciones, contador de represalia) pero expone el mismo contrato.
type DharmaNiti struct {
	histories

	betrayals             int
	consecutiveDefections int
	roundsSinceBetrayal   int

	retaliation retaliationState
}

// NewDharmaNiti crea una instancia fresca del motor de decisión. El torneo
// exige una por match: el estado nunca se filtra entre oponentes.
func NewDharmaNiti() *DharmaNiti {
	return &DharmaNiti{}
}

func (*DharmaNiti) Name() string { return "DharmaNiti" }

// DecideMove aplica la cascada de reglas en orden de prioridad.
func (s *DharmaNiti) DecideMove() domain.Move {
	// Regla 1: sin historial, abrir cooperando.
	if len(s.opponent) == 0 {
		return domain.Cooperate
	}

	// Regla 2: represalia activa — compromiso de longitud fija, no se
	// reevalúa a mitad de camino.
	if s.retaliation.active {
		s.retaliation.remaining--
		if s.retaliation.remaining <= 0 {
			s.retaliation = retaliationState{}
		}
		return domain.Defect
	}

	features := domain.ComputeFeatures(s.own, s.opponent, s.betrayals, s.consecutiveDefections)

	// Regla 3: perdón si el oponente se reformó. Se reevalúa cada ronda
	// mientras no haya represalia activa.
	if s.shouldForgive(features) {
		s.retaliation = retaliationState{}
		s.consecutiveDefections = 0
		return domain.Cooperate
	}

	// Regla 4: responder a la traición.
	if s.opponent[len(s.opponent)-1] == domain.Defect {
		return s.handleDefection(features)
	}

	// Regla 5: premiar la cooperación.
	return s.handleCooperation(features)
}

// UpdateHistory es el único mutador. Debe llamarse exactamente una vez por
// ronda, después de DecideMove, con las jugadas post-ruido.
func (s *DharmaNiti) UpdateHistory(own, opponent domain.Move) {
	s.histories.UpdateHistory(own, opponent)

	if opponent == domain.Defect {
		s.consecutiveDefections++
		// "Traición" = cooperamos y nos traicionaron; el raw count de
		// defecciones del oponente no alimenta la tasa de traición.
		if own == domain.Cooperate {
			s.betrayals++
			s.roundsSinceBetrayal = 0
		}
	} else {
		s.consecutiveDefections = 0
		s.roundsSinceBetrayal++
	}
}

// Reset limpia historiales y todos los contadores.
func (s *DharmaNiti) Reset() {
	*s = DharmaNiti{}
}

// handleDefection responde a una traición con represalia proporcional.
// Las reglas solo ARRANCAN una represalia; nunca extienden una en curso
// (estructuralmente imposible llegar aquí con una activa).
func (s *DharmaNiti) handleDefection(f domain.Features) domain.Move {
	// Tolerancia a ruido: error aislado de un oponente cooperativo.
	if f.OverallCoop > cooperativeThreshold && s.consecutiveDefections <= noiseTolerance {
		return domain.Cooperate
	}

	// Traición aislada → respuesta tit-for-tat de una ronda.
	if s.consecutiveDefections == 1 {
		s.startRetaliation(1)
		return domain.Defect
	}

	// Agresión sostenida → escalada acotada.
	if f.AggressiveStreak {
		s.startRetaliation(min(retaliationCap, s.consecutiveDefections))
		return domain.Defect
	}

	// Frecuencia alta de traición histórica → postura defensiva.
	if f.BetrayalRate > betrayalThreshold {
		s.startRetaliation(2)
		return domain.Defect
	}

	return domain.Defect
}

// handleCooperation responde a la cooperación del oponente.
func (s *DharmaNiti) handleCooperation(f domain.Features) domain.Move {
	if f.OverallCoop > cooperativeThreshold {
		return domain.Cooperate
	}

	if f.RecentCoop > 0.60 {
		return domain.Cooperate
	}

	// Probe cauteloso contra explotadores: cooperar solo periódicamente.
	if f.BetrayalRate > betrayalThreshold {
		if f.TotalRounds%probeEvery == 0 {
			return domain.Cooperate
		}
		return domain.Defect
	}

	return domain.Cooperate
}

// shouldForgive comprueba reforma sostenida del oponente. Nunca se concede
// antes de MinRoundsForJudgment ni con represalia activa (la regla 2 corta
// antes).
func (s *DharmaNiti) shouldForgive(f domain.Features) bool {
	if f.TotalRounds < domain.MinRoundsForJudgment {
		return false
	}
	recent := s.opponent[len(s.opponent)-forgivenessWindow:]
	for _, m := range recent {
		if m != domain.Cooperate {
			return false
		}
	}
	return s.roundsSinceBetrayal >= forgivenessWindow && f.RecentCoop > 0.80
}

func (s *DharmaNiti) startRetaliation(rounds int) {
	if s.retaliation.active {
		return
	}
	s.retaliation = retaliationState{remaining: rounds, active: true}
}
