package domain

import "fmt"

// Move es una jugada del dilema del prisionero: cooperar o traicionar.
// Cualquier otro valor es un error de validación, nunca se coerciona.
type Move string

const (
	Cooperate Move = "C"
	Defect    Move = "D"
)

// Validate devuelve ErrInvalidMove (envuelto) si la jugada no es C ni D.
func (m Move) Validate() error {
	if m != Cooperate && m != Defect {
		return fmt.Errorf("domain: move %q: %w", string(m), ErrInvalidMove)
	}
	return nil
}

// Flip devuelve la jugada opuesta. Se usa para aplicar ruido de ejecución.
func (m Move) Flip() Move {
	if m == Cooperate {
		return Defect
	}
	return Cooperate
}

// Payoff devuelve los puntos de cada jugador para un par de jugadas.
// Tabla canónica: (C,C)→(3,3); (C,D)→(0,5); (D,C)→(5,0); (D,D)→(1,1).
// Simétrica bajo intercambio de jugadores: Payoff(a,b) == swap(Payoff(b,a)).
func Payoff(m1, m2 Move) (int, int) {
	switch {
	case m1 == Cooperate && m2 == Cooperate:
		return 3, 3
	case m1 == Cooperate && m2 == Defect:
		return 0, 5
	case m1 == Defect && m2 == Cooperate:
		return 5, 0
	default:
		return 1, 1
	}
}

// MovePair es el par de jugadas efectivamente jugadas en una ronda
// (después del ruido).
type MovePair struct {
	P1 Move
	P2 Move
}
