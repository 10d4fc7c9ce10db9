package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoff_MutualCooperation(t *testing.T) {
	p1, p2 := Payoff(Cooperate, Cooperate)
	assert.Equal(t, 3, p1)
	assert.Equal(t, 3, p2)
}

func TestPayoff_Sucker(t *testing.T) {
	p1, p2 := Payoff(Cooperate, Defect)
	assert.Equal(t, 0, p1)
	assert.Equal(t, 5, p2)
}

func TestPayoff_Temptation(t *testing.T) {
	p1, p2 := Payoff(Defect, Cooperate)
	assert.Equal(t, 5, p1)
	assert.Equal(t, 0, p2)
}

func TestPayoff_MutualDefection(t *testing.T) {
	p1, p2 := Payoff(Defect, Defect)
	assert.Equal(t, 1, p1)
	assert.Equal(t, 1, p2)
}

func TestPayoff_Symmetric(t *testing.T) {
	// Payoff(a,b) == swap(Payoff(b,a)) para todos los pares
	moves := []Move{Cooperate, Defect}
	for _, a := range moves {
		for _, b := range moves {
			x1, x2 := Payoff(a, b)
			y1, y2 := Payoff(b, a)
			assert.Equal(t, x1, y2)
			assert.Equal(t, x2, y1)
		}
	}
}

// --- Validate ---

func TestMove_Validate_Valid(t *testing.T) {
	assert.NoError(t, Cooperate.Validate())
	assert.NoError(t, Defect.Validate())
}

func TestMove_Validate_Invalid(t *testing.T) {
	err := Move("X").Validate()
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestMove_Validate_Empty(t *testing.T) {
	assert.ErrorIs(t, Move("").Validate(), ErrInvalidMove)
}

func TestMove_Validate_Lowercase(t *testing.T) {
	// No se coerciona: "c" no es "C"
	assert.ErrorIs(t, Move("c").Validate(), ErrInvalidMove)
}

// --- Flip ---

func TestMove_Flip(t *testing.T) {
	assert.Equal(t, Defect, Cooperate.Flip())
	assert.Equal(t, Cooperate, Defect.Flip())
}
