package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/ipdbot/internal/domain"
	"github.com/alejandrodnm/ipdbot/internal/strategy"
)

func newTestTournament(t *testing.T, cfg Config) *Tournament {
	t.Helper()
	tournament, err := NewTournament(cfg,
		func() strategy.Strategy { return strategy.NewDharmaNiti() },
		strategy.DefaultRoster,
	)
	require.NoError(t, err)
	return tournament
}

func findRecord(t *testing.T, s domain.Summary, opponent string) domain.MatchRecord {
	t.Helper()
	for _, r := range s.Results {
		if r.Opponent == opponent {
			return r
		}
	}
	t.Fatalf("no record for %s", opponent)
	return domain.MatchRecord{}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, Config{Rounds: 0, Seed: 1}.Validate(), domain.ErrInvalidConfig)
	assert.ErrorIs(t, Config{Rounds: 10, Noise: 1.0}.Validate(), domain.ErrInvalidConfig)
	assert.ErrorIs(t, Config{Rounds: 10, Noise: -0.5}.Validate(), domain.ErrInvalidConfig)
}

func TestNewTournament_NilFactory(t *testing.T) {
	_, err := NewTournament(DefaultConfig(), nil, strategy.DefaultRoster)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestTournament_Run_FullRoster(t *testing.T) {
	tournament := newTestTournament(t, DefaultConfig())

	summary, err := tournament.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, summary.TotalMatches)
	assert.Len(t, summary.Results, 7)
	assert.Equal(t, summary.TotalMatches, summary.Wins+summary.Losses)

	// El orden de los resultados es el orden del roster
	assert.Equal(t, "AlwaysCooperate", summary.Results[0].Opponent)
	assert.Equal(t, "Suspicious", summary.Results[6].Opponent)
}

func TestTournament_Run_VsAlwaysCooperate(t *testing.T) {
	summary, err := newTestTournament(t, DefaultConfig()).Run(context.Background())
	require.NoError(t, err)

	r := findRecord(t, summary, "AlwaysCooperate")
	assert.Equal(t, 600, r.OurScore)
	assert.Equal(t, 600, r.OpponentScore)
	assert.InDelta(t, 1.0, r.OurCoop, 0.001)
	assert.False(t, r.Won, "el empate cuenta como derrota")
	assert.Zero(t, r.ScoreDifference)
}

func TestTournament_Run_VsAlwaysDefect(t *testing.T) {
	summary, err := newTestTournament(t, DefaultConfig()).Run(context.Background())
	require.NoError(t, err)

	// Apertura C (0 pts) + 199 rondas (D,D): perdemos por 5
	r := findRecord(t, summary, "AlwaysDefect")
	assert.Equal(t, 199, r.OurScore)
	assert.Equal(t, 204, r.OpponentScore)
	assert.False(t, r.Won)
	assert.Equal(t, -5, r.ScoreDifference)
}

func TestTournament_Run_VsTitForTat(t *testing.T) {
	summary, err := newTestTournament(t, DefaultConfig()).Run(context.Background())
	require.NoError(t, err)

	r := findRecord(t, summary, "TitForTat")
	assert.Equal(t, 600, r.OurScore)
	assert.Equal(t, 600, r.OpponentScore)
}

func TestTournament_Run_Deterministic(t *testing.T) {
	cfg := Config{Rounds: 100, Noise: 0.05, Seed: 42}

	s1, err := newTestTournament(t, cfg).Run(context.Background())
	require.NoError(t, err)
	s2, err := newTestTournament(t, cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}

func TestTournament_Run_EmptyRoster(t *testing.T) {
	tournament, err := NewTournament(DefaultConfig(),
		func() strategy.Strategy { return strategy.NewDharmaNiti() },
		func(_ *rand.Rand) []strategy.Strategy { return nil },
	)
	require.NoError(t, err)

	_, err = tournament.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestTournament_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestTournament(t, DefaultConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// --- summarize ---

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)
	assert.Zero(t, s.TotalMatches)
	assert.Zero(t, s.AverageScore)
	assert.Zero(t, s.WinRate)
}

func TestSummarize_Aggregates(t *testing.T) {
	records := []domain.MatchRecord{
		{Opponent: "A", OurScore: 600, Won: true},
		{Opponent: "B", OurScore: 200, Won: false},
	}

	s := summarize(records)
	assert.Equal(t, 2, s.TotalMatches)
	assert.Equal(t, 800, s.TotalScore)
	assert.InDelta(t, 400.0, s.AverageScore, 0.001)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 0.5, s.WinRate, 0.001)
}
