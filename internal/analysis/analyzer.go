package analysis

// analyzer.go — análisis derivado del Summary del torneo.
//
// Este paquete es el colaborador externo del core: consume SOLO el Summary
// congelado y nunca toca los internos del motor.

import (
	"sort"
	"strings"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

// Metrics son los indicadores agregados de rendimiento.
type Metrics struct {
	TotalMatches int     `json:"total_matches"`
	TotalScore   int     `json:"total_score"`
	AverageScore float64 `json:"average_score"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"win_rate"`
}

// Difficulty clasifica qué tan duro resultó un oponente.
type Difficulty string

const (
	DifficultyHard   Difficulty = "Hard"   // nos ganó
	DifficultyMedium Difficulty = "Medium" // gap < 100
	DifficultyEasy   Difficulty = "Easy"
)

// Ranking es una entrada del ranking de dificultad, de más duro a más fácil.
type Ranking struct {
	Rank       int        `json:"rank"`
	Opponent   string     `json:"opponent"`
	Difficulty Difficulty `json:"difficulty"`
	ScoreGap   int        `json:"score_gap"`
}

// ClassStats agrupa el rendimiento contra una clase de oponentes.
type ClassStats struct {
	AvgScore      float64 `json:"avg_score"`
	WinRate       float64 `json:"win_rate"`
	CoopRate      float64 `json:"cooperation_rate"`
	MatchesPlayed int     `json:"matches_played"`
}

// Classification separa el rendimiento por clase de oponente.
type Classification struct {
	VsCooperators ClassStats `json:"vs_pure_cooperators"`
	VsDefectors   ClassStats `json:"vs_pure_defectors"`
	VsAdaptive    ClassStats `json:"vs_adaptive_strategies"`
}

// Analyzer calcula vistas derivadas sobre un Summary congelado.
type Analyzer struct {
	summary domain.Summary
}

// New crea el analizador sobre el resumen dado.
func New(summary domain.Summary) *Analyzer {
	return &Analyzer{summary: summary}
}

// Metrics extrae los KPIs del resumen.
func (a *Analyzer) Metrics() Metrics {
	s := a.summary
	return Metrics{
		TotalMatches: s.TotalMatches,
		TotalScore:   s.TotalScore,
		AverageScore: s.AverageScore,
		Wins:         s.Wins,
		Losses:       s.Losses,
		WinRate:      s.WinRate,
	}
}

// RankByDifficulty ordena los oponentes de más duro a más fácil según la
// diferencia de puntuación.
func (a *Analyzer) RankByDifficulty() []Ranking {
	ranked := make([]domain.MatchRecord, len(a.summary.Results))
	copy(ranked, a.summary.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreDifference < ranked[j].ScoreDifference
	})

	out := make([]Ranking, len(ranked))
	for i, r := range ranked {
		out[i] = Ranking{
			Rank:       i + 1,
			Opponent:   r.Opponent,
			Difficulty: classifyDifficulty(r.ScoreDifference),
			ScoreGap:   r.ScoreDifference,
		}
	}
	return out
}

// Classify agrupa los resultados por clase de oponente: cooperadores puros,
// traidores puros (incluye Grudger) y estrategias adaptativas.
func (a *Analyzer) Classify() Classification {
	var coops, defs, adaptive []domain.MatchRecord
	for _, r := range a.summary.Results {
		switch {
		case strings.Contains(r.Opponent, "Cooperate"):
			coops = append(coops, r)
		case strings.Contains(r.Opponent, "Defect") || strings.Contains(r.Opponent, "Grudger"):
			defs = append(defs, r)
		default:
			adaptive = append(adaptive, r)
		}
	}
	return Classification{
		VsCooperators: classStats(coops),
		VsDefectors:   classStats(defs),
		VsAdaptive:    classStats(adaptive),
	}
}

func classifyDifficulty(gap int) Difficulty {
	switch {
	case gap < 0:
		return DifficultyHard
	case gap < 100:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

func classStats(records []domain.MatchRecord) ClassStats {
	if len(records) == 0 {
		return ClassStats{}
	}

	var score int
	var wins int
	var coop float64
	for _, r := range records {
		score += r.OurScore
		if r.Won {
			wins++
		}
		coop += r.OurCoop
	}

	n := float64(len(records))
	return ClassStats{
		AvgScore:      float64(score) / n,
		WinRate:       float64(wins) / n,
		CoopRate:      coop / n,
		MatchesPlayed: len(records),
	}
}
