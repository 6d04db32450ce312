package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/advisor/internal/infra/storage"
)

// Pruner deletes old decision records based on retention policy.
type Pruner struct {
	retention time.Duration
	repo      storage.DecisionRepository
}

// NewPruner creates a new Pruner worker.
func NewPruner(retention time.Duration, repo storage.DecisionRepository) *Pruner {
	return &Pruner{
		retention: retention,
		repo:      repo,
	}
}

// Start runs the pruner loop.
func (p *Pruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		return // Retention disabled
	}

	// Check interval: 10% of retention, clamped to [1m, 1h]
	interval := min(p.retention/10, 1*time.Hour)
	interval = max(interval, 1*time.Minute)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial prune
	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("Pruner failed to delete old decisions", "error", err)
		return
	}
	if deleted > 0 {
		slog.Debug("Pruned old decisions", "count", deleted)
	}
}
