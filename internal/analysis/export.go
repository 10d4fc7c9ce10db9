package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

// ExportEnvelope es el documento JSON completo que se entrega a los
// consumidores externos (gráficas, comparativas).
type ExportEnvelope struct {
	RunID          string         `json:"run_id"`
	Timestamp      string         `json:"timestamp"`
	Summary        domain.Summary `json:"summary"`
	Metrics        Metrics        `json:"metrics"`
	Ranking        []Ranking      `json:"difficulty_ranking"`
	Classification Classification `json:"strategy_classification"`
}

// Export escribe el análisis completo como JSON indentado en path.
func (a *Analyzer) Export(path string) (ExportEnvelope, error) {
	env := ExportEnvelope{
		RunID:          uuid.New().String(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Summary:        a.summary,
		Metrics:        a.Metrics(),
		Ranking:        a.RankByDifficulty(),
		Classification: a.Classify(),
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return ExportEnvelope{}, fmt.Errorf("analysis.Export: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ExportEnvelope{}, fmt.Errorf("analysis.Export: write %q: %w", path, err)
	}
	return env, nil
}
