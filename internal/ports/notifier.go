package ports

import (
	"context"

	"github.com/alejandrodnm/ipdbot/internal/domain"
)

// Notifier publica el resultado de un torneo. Solo puede depender del
// Summary: jamás de los internos del motor de decisión o del match.
type Notifier interface {
	Notify(ctx context.Context, summary domain.Summary) error
}
