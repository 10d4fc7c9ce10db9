package domain

import "errors"

var (
	// ErrInvalidMove indica que una estrategia produjo algo fuera de {C, D}.
	// Es fatal para el match: abortar, nunca coercionar al payoff.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidConfig indica configuración rechazada antes de jugar:
	// rondas < 1, ruido fuera de [0,1) o roster vacío.
	ErrInvalidConfig = errors.New("invalid configuration")
)
