package notify

// console.go — salida por consola del torneo: tabla comparativa, ranking de
// dificultad y clasificación por tipo de oponente.

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/ipdbot/internal/analysis"
	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/ports"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el resumen en el modo configurado.
func (c *Console) Notify(_ context.Context, summary domain.Summary) error {
	if summary.TotalMatches == 0 {
		fmt.Fprintf(c.out, "[%s] no matches played\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printFull(summary)
	} else {
		c.printCompact(summary)
	}
	return nil
}

// printCompact imprime lo esencial en una línea por match.
func (c *Console) printCompact(s domain.Summary) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d matches → W:%d L:%d score:%d",
		time.Now().Format("15:04:05"), s.TotalMatches, s.Wins, s.Losses, s.TotalScore)

	for _, r := range s.Results {
		fmt.Fprintf(&sb, " | %s %s %d-%d",
			outcomeIcon(r.Won), r.Opponent, r.OurScore, r.OpponentScore)
	}
	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla comparativa completa más análisis.
func (c *Console) printFull(s domain.Summary) {
	fmt.Fprintf(c.out, "\n[%s] tournament — %d matches, W:%d L:%d (%.1f%%)\n",
		time.Now().Format("15:04:05"), s.TotalMatches, s.Wins, s.Losses, s.WinRate*100)

	c.printComparison(s)

	a := analysis.New(s)
	c.printRanking(a.RankByDifficulty())
	c.printClassification(a.Classify())
	c.printSummaryBlock(s)
}

// printComparison imprime la tabla match a match.
func (c *Console) printComparison(s domain.Summary) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Opponent", "Our Score", "Their Score", "Our Coop", "Their Coop", "Avg/Round", "Result")

	for i, r := range s.Results {
		table.Append(
			fmt.Sprintf("%d", i+1),
			r.Opponent,
			fmt.Sprintf("%d", r.OurScore),
			fmt.Sprintf("%d", r.OpponentScore),
			fmt.Sprintf("%.1f%%", r.OurCoop*100),
			fmt.Sprintf("%.1f%%", r.OppCoop*100),
			fmt.Sprintf("%.2f", r.OurAvg),
			outcomeLabel(r.Won),
		)
	}
	table.Render()
}

// printRanking imprime los oponentes de más duro a más fácil.
func (c *Console) printRanking(ranking []analysis.Ranking) {
	fmt.Fprintf(c.out, "\n=== DIFFICULTY RANKING (hardest to easiest) ===\n")
	for _, r := range ranking {
		fmt.Fprintf(c.out, "  %d. %-18s [%-6s] gap: %+d\n",
			r.Rank, r.Opponent, r.Difficulty, r.ScoreGap)
	}
}

// printClassification imprime el rendimiento por clase de oponente.
func (c *Console) printClassification(cls analysis.Classification) {
	fmt.Fprintf(c.out, "\n=== PERFORMANCE BY OPPONENT CLASS ===\n")
	printClass(c.out, "vs pure cooperators", cls.VsCooperators)
	printClass(c.out, "vs pure defectors", cls.VsDefectors)
	printClass(c.out, "vs adaptive strategies", cls.VsAdaptive)
}

func printClass(w io.Writer, label string, st analysis.ClassStats) {
	if st.MatchesPlayed == 0 {
		fmt.Fprintf(w, "  %-24s (no matches)\n", label)
		return
	}
	fmt.Fprintf(w, "  %-24s avg:%7.1f  win:%5.1f%%  coop:%5.1f%%  (%d)\n",
		label, st.AvgScore, st.WinRate*100, st.CoopRate*100, st.MatchesPlayed)
}

// printSummaryBlock imprime el bloque final de totales.
func (c *Console) printSummaryBlock(s domain.Summary) {
	fmt.Fprintf(c.out, "\n  ─────────────────────────────────────────\n")
	fmt.Fprintf(c.out, "  Total score:        %d\n", s.TotalScore)
	fmt.Fprintf(c.out, "  Average per match:  %.2f\n", s.AverageScore)
	fmt.Fprintf(c.out, "  Wins:               %d/%d (%.1f%%)\n",
		s.Wins, s.TotalMatches, s.WinRate*100)
	fmt.Fprintln(c.out)
}

// PrintSweep imprime la tabla resumen del barrido de ruido.
func (c *Console) PrintSweep(levels []float64, summaries []domain.Summary) {
	fmt.Fprintf(c.out, "\n=== NOISE SWEEP — %d levels ===\n", len(levels))

	table := tablewriter.NewWriter(c.out)
	table.Header("Noise", "Total", "Avg/Match", "Wins", "Win Rate", "Worst Gap")

	for i, s := range summaries {
		table.Append(
			fmt.Sprintf("%.2f", levels[i]),
			fmt.Sprintf("%d", s.TotalScore),
			fmt.Sprintf("%.1f", s.AverageScore),
			fmt.Sprintf("%d/%d", s.Wins, s.TotalMatches),
			fmt.Sprintf("%.1f%%", s.WinRate*100),
			fmt.Sprintf("%+d", worstGap(s)),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// PrintHistory imprime las ejecuciones persistidas, la más nueva primero.
func (c *Console) PrintHistory(runs []ports.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "\n  No stored runs yet. Run a tournament first.")
		return
	}

	fmt.Fprintf(c.out, "\n=== RECENT RUNS (%d) ===\n", len(runs))

	table := tablewriter.NewWriter(c.out)
	table.Header("Run", "At", "Rounds", "Noise", "Seed", "Total", "Win Rate")

	for _, run := range runs {
		table.Append(
			shortID(run.ID),
			run.RunAt,
			fmt.Sprintf("%d", run.Rounds),
			fmt.Sprintf("%.2f", run.Noise),
			fmt.Sprintf("%d", run.Seed),
			fmt.Sprintf("%d", run.Summary.TotalScore),
			fmt.Sprintf("%.1f%%", run.Summary.WinRate*100),
		)
	}
	table.Render()
	fmt.Fprintln(c.out)
}

// --- helpers ---

func outcomeIcon(won bool) string {
	if won {
		return "✓"
	}
	return "✗"
}

func outcomeLabel(won bool) string {
	if won {
		return "WIN"
	}
	return "LOSS"
}

func worstGap(s domain.Summary) int {
	worst := 0
	for i, r := range s.Results {
		if i == 0 || r.ScoreDifference < worst {
			worst = r.ScoreDifference
		}
	}
	return worst
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
