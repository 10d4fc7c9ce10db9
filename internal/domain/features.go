package domain

// features.go — métricas interpretables del comportamiento del oponente.
//
// El snapshot se recalcula en cada ronda a partir de los historiales; nunca
// se persiste. Todas las divisiones están protegidas: denominador cero → 0.0.

// RecentWindow es la ventana de estabilidad de tendencia (rondas).
const RecentWindow = 15

// MinRoundsForJudgment es el mínimo de cooperaciones propias antes de
// confiar en la tasa de traición (evita ruido de muestra pequeña).
const MinRoundsForJudgment = 10

// Features es la vista derivada de solo lectura sobre los historiales de una
// estrategia en la ronda actual.
type Features struct {
	OverallCoop      float64 // tasa de cooperación del oponente, todo el match
	RecentCoop       float64 // tasa de cooperación en la ventana reciente
	BetrayalRate     float64 // traiciones / cooperaciones propias (con gate)
	AggressiveStreak bool    // oponente traicionó ≥ 2 rondas seguidas
	TotalRounds      int
}

// ComputeFeatures calcula el snapshot a partir de los historiales y los
// contadores que mantiene el motor de decisión.
//
// betrayals cuenta solo las rondas donde cooperamos y el oponente traicionó;
// consecutiveDefections es la racha actual de traiciones del oponente.
func ComputeFeatures(ownHistory, oppHistory []Move, betrayals, consecutiveDefections int) Features {
	total := len(oppHistory)
	if total == 0 {
		return Features{}
	}

	f := Features{
		OverallCoop:      CooperationRate(oppHistory),
		AggressiveStreak: consecutiveDefections >= 2,
		TotalRounds:      total,
	}

	recent := oppHistory
	if total > RecentWindow {
		recent = oppHistory[total-RecentWindow:]
	}
	f.RecentCoop = CooperationRate(recent)

	ownCoop := countCoop(ownHistory)
	if ownCoop >= MinRoundsForJudgment {
		f.BetrayalRate = float64(betrayals) / float64(ownCoop)
	}

	return f
}

// CooperationRate devuelve la fracción de C en la secuencia (0.0 si vacía).
func CooperationRate(moves []Move) float64 {
	if len(moves) == 0 {
		return 0
	}
	return float64(countCoop(moves)) / float64(len(moves))
}

func countCoop(moves []Move) int {
	n := 0
	for _, m := range moves {
		if m == Cooperate {
			n++
		}
	}
	return n
}
