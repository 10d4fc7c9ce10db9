package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

func moves(s string) []domain.Move {
	out := make([]domain.Move, len(s))
	for i, c := range s {
		out[i] = domain.Move(string(c))
	}
	return out
}

func TestDharmaNiti_OpensCooperating(t *testing.T) {
	s := NewDharmaNiti()
	assert.Equal(t, domain.Cooperate, s.DecideMove())
}

func TestDharmaNiti_ToleratesIsolatedDefection(t *testing.T) {
	// Oponente cooperativo (9 C) con un error aislado: no se castiga.
	s := NewDharmaNiti()
	opp := append(moves("CCCCCCCCC"), domain.Defect, domain.Cooperate)

	got := feed(s, opp)
	assert.Equal(t, domain.Cooperate, got[10], "un error aislado de un cooperador no dispara represalia")
}

func TestDharmaNiti_ToleranceEndsAtStreak(t *testing.T) {
	// Dos traiciones seguidas de un cooperador fuerte se toleran; la
	// tercera consecutiva dispara represalia.
	s := NewDharmaNiti()
	opp := append(moves("CCCCCCCCCCCCCCCCCCCC"), moves("DDDD")...)

	got := feed(s, opp)
	assert.Equal(t, domain.Cooperate, got[21]) // tras 1ª D
	assert.Equal(t, domain.Cooperate, got[22]) // tras 2ª D
	assert.Equal(t, domain.Defect, got[23])    // tras 3ª D: racha > tolerancia
}

func TestDharmaNiti_RetaliationIsBoundedCommitment(t *testing.T) {
	// Tres traiciones al abrir, después cooperación total. La represalia
	// comprometida se cumple entera y acotada, y después se vuelve a
	// cooperar.
	s := NewDharmaNiti()
	opp := moves("DDDCCCCC")

	got := feed(s, opp)
	assert.Equal(t, moves("CDDDDDDC"), got)
}

func TestDharmaNiti_AllDefectAfterOpeningVsAlwaysDefect(t *testing.T) {
	s := NewDharmaNiti()
	opp := make([]domain.Move, 30)
	for i := range opp {
		opp[i] = domain.Defect
	}

	got := feed(s, opp)
	assert.Equal(t, domain.Cooperate, got[0])
	for i, m := range got[1:] {
		assert.Equal(t, domain.Defect, m, "ronda %d", i+2)
	}
}

func TestDharmaNiti_MutualCooperationVsCooperator(t *testing.T) {
	s := NewDharmaNiti()
	opp := make([]domain.Move, 50)
	for i := range opp {
		opp[i] = domain.Cooperate
	}

	for _, m := range feed(s, opp) {
		assert.Equal(t, domain.Cooperate, m)
	}
}

func TestDharmaNiti_ProbeVsExploiter(t *testing.T) {
	// Explotador con tasa de traición alta que ahora coopera: no se le
	// premia incondicionalmente, se coopera solo módulo probeEvery.
	s := NewDharmaNiti()
	for i := 0; i < 6; i++ {
		s.UpdateHistory(domain.Cooperate, domain.Defect)
	}
	for i := 0; i < 6; i++ {
		s.UpdateHistory(domain.Cooperate, domain.Cooperate)
	}

	// Estado en el régimen del probe: cooperación global y reciente bajas,
	// tasa de traición alta ya pasado el umbral de juicio.
	f := domain.ComputeFeatures(s.own, s.opponent, s.betrayals, s.consecutiveDefections)
	require.Greater(t, f.BetrayalRate, 0.30)
	require.LessOrEqual(t, f.OverallCoop, 0.70)
	require.LessOrEqual(t, f.RecentCoop, 0.60)
	require.False(t, s.shouldForgive(f))

	assert.Equal(t, domain.Cooperate, s.DecideMove()) // ronda 12: múltiplo de 3

	s.UpdateHistory(domain.Cooperate, domain.Cooperate)
	assert.Equal(t, domain.Defect, s.DecideMove()) // 13

	s.UpdateHistory(domain.Cooperate, domain.Cooperate)
	assert.Equal(t, domain.Defect, s.DecideMove()) // 14

	s.UpdateHistory(domain.Cooperate, domain.Cooperate)
	assert.Equal(t, domain.Cooperate, s.DecideMove()) // 15
}

func TestDharmaNiti_ToleranceKeysOnStreakNotTotal(t *testing.T) {
	// Muchas traiciones acumuladas pero siempre aisladas: mientras la
	// cooperación global se mantenga alta, cada una se sigue tolerando.
	s := NewDharmaNiti()
	var opp []domain.Move
	for i := 0; i < 8; i++ {
		opp = append(opp, moves("CCCD")...)
	}

	for _, m := range feed(s, opp) {
		assert.Equal(t, domain.Cooperate, m)
	}
}

// --- represalia ---

func TestStartRetaliation_NeverRestacks(t *testing.T) {
	s := NewDharmaNiti()
	s.startRetaliation(2)
	s.startRetaliation(3)

	assert.True(t, s.retaliation.active)
	assert.Equal(t, 2, s.retaliation.remaining)
}

func TestRetaliation_CountsDownAndClears(t *testing.T) {
	s := NewDharmaNiti()
	s.histories.UpdateHistory(domain.Cooperate, domain.Defect)
	s.startRetaliation(2)

	assert.Equal(t, domain.Defect, s.DecideMove())
	assert.True(t, s.retaliation.active)
	assert.Equal(t, domain.Defect, s.DecideMove())
	assert.False(t, s.retaliation.active)
}

// --- perdón ---

func TestShouldForgive_Granted(t *testing.T) {
	s := NewDharmaNiti()
	s.own = moves("CCCCCCCCCC")
	s.opponent = moves("DCCCCCCCCC")
	s.roundsSinceBetrayal = 9

	f := domain.ComputeFeatures(s.own, s.opponent, 1, 0)
	assert.True(t, s.shouldForgive(f))
}

func TestShouldForgive_TooEarly(t *testing.T) {
	// Con menos de 10 rondas no se juzga, aunque el oponente sea perfecto.
	s := NewDharmaNiti()
	s.own = moves("CCCCCCCCC")
	s.opponent = moves("CCCCCCCCC")
	s.roundsSinceBetrayal = 9

	f := domain.ComputeFeatures(s.own, s.opponent, 0, 0)
	assert.False(t, s.shouldForgive(f))
}

func TestShouldForgive_RecentDefectionBlocks(t *testing.T) {
	s := NewDharmaNiti()
	s.own = moves("CCCCCCCCCC")
	s.opponent = moves("CCCCCCCCCD")
	s.roundsSinceBetrayal = 0

	f := domain.ComputeFeatures(s.own, s.opponent, 1, 1)
	assert.False(t, s.shouldForgive(f))
}

func TestShouldForgive_ReformWindowTooShort(t *testing.T) {
	// Últimas 5 limpias pero la traición fue hace menos de 5 rondas propias
	s := NewDharmaNiti()
	s.own = moves("CCCCCCCCCC")
	s.opponent = moves("DDCCCCCCCC")
	s.roundsSinceBetrayal = 4

	f := domain.ComputeFeatures(s.own, s.opponent, 2, 0)
	assert.False(t, s.shouldForgive(f))
}

// --- Reset ---

func TestDharmaNiti_ResetClearsEverything(t *testing.T) {
	s := NewDharmaNiti()
	feed(s, moves("DDDDD"))
	require.NotZero(t, s.betrayals)

	s.Reset()
	assert.Zero(t, s.betrayals)
	assert.Zero(t, s.consecutiveDefections)
	assert.False(t, s.retaliation.active)
	assert.Equal(t, domain.Cooperate, s.DecideMove())
}
