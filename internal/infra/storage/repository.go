package storage

import (
	"context"
	"time"

	"github.com/vietddude/advisor/internal/core/domain"
)

// DecisionRepository persists the advisory audit trail.
type DecisionRepository interface {
	// Add stores a decision record.
	Add(ctx context.Context, rec *domain.DecisionRecord) error

	// Recent returns the newest records, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.DecisionRecord, error)

	// CountByTechnique tallies stored decisions per primary technique.
	CountByTechnique(ctx context.Context) (map[domain.HandlingTechnique]int, error)

	// DeleteOlderThan removes records created before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
