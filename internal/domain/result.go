package domain

// MatchStats son las tasas derivadas de un match completado. Inmutable:
// se construye al final del match y no se toca después.
type MatchStats struct {
	Score1    int     `json:"score1"`
	Score2    int     `json:"score2"`
	AvgScore1 float64 `json:"avg_score1"`
	AvgScore2 float64 `json:"avg_score2"`
	CoopRate1 float64 `json:"cooperation_rate1"`
	CoopRate2 float64 `json:"cooperation_rate2"`
	Rounds    int     `json:"rounds"`
}

// MatchRecord es la entrada de resultado de un match dentro del torneo.
// "Won" es comparación estricta: los empates cuentan como derrota.
type MatchRecord struct {
	Opponent        string  `json:"opponent"`
	OurScore        int     `json:"our_score"`
	OpponentScore   int     `json:"opponent_score"`
	OurAvg          float64 `json:"our_avg"`
	OurCoop         float64 `json:"our_coop"`
	OppCoop         float64 `json:"opp_coop"`
	Won             bool    `json:"won"`
	ScoreDifference int     `json:"score_difference"`
}

// Summary es el resumen congelado del torneo: el ÚNICO contrato que los
// colaboradores de análisis/reporting pueden consumir.
type Summary struct {
	TotalMatches int           `json:"total_matches"`
	TotalScore   int           `json:"total_score"`
	AverageScore float64       `json:"average_score"`
	Wins         int           `json:"wins"`
	Losses       int           `json:"losses"`
	WinRate      float64       `json:"win_rate"`
	Results      []MatchRecord `json:"results"`
}
