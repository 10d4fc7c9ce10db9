package strategy

import "github.com/alejandrodnm/ipdbot/internal/domain"

// Strategy define el contrato mínimo de un jugador del dilema iterado.
// DecideMove se llama exactamente una vez por ronda, antes de UpdateHistory;
// UpdateHistory recibe las jugadas efectivamente jugadas (post-ruido).
type Strategy interface {
	// Name identifica la estrategia en resultados y reportes.
	Name() string

	// DecideMove devuelve la próxima jugada en función del estado interno.
	DecideMove() domain.Move

	// UpdateHistory registra la ronda completada. Único mutador.
	UpdateHistory(own, opponent domain.Move)

	// Reset limpia todo el estado acumulado. Obligatorio entre matches:
	// reutilizar historial de otro match es una violación de contrato.
	Reset()
}

// histories lleva los dos historiales append-only que comparten todas las
// estrategias. Indexados idénticamente: la ronda i de own corresponde a la
// ronda i de opponent.
type histories struct {
	own      []domain.Move
	opponent []domain.Move
}

func (h *histories) UpdateHistory(own, opponent domain.Move) {
	h.own = append(h.own, own)
	h.opponent = append(h.opponent, opponent)
}

func (h *histories) Reset() {
	h.own = nil
	h.opponent = nil
}

func (h *histories) lastOpponent() (domain.Move, bool) {
	if len(h.opponent) == 0 {
		return "", false
	}
	return h.opponent[len(h.opponent)-1], true
}
