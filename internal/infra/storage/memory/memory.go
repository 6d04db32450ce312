// Package memory provides an in-memory DecisionRepository for runs
// without a database (local development, one-shot CLI use).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vietddude/advisor/internal/core/domain"
)

// DecisionRepo is a mutex-guarded in-memory repository.
type DecisionRepo struct {
	mu      sync.Mutex
	records []*domain.DecisionRecord
}

// NewDecisionRepo creates an empty in-memory repository.
func NewDecisionRepo() *DecisionRepo {
	return &DecisionRepo{}
}

// Add stores a decision record.
func (r *DecisionRepo) Add(ctx context.Context, rec *domain.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *rec
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, &cp)
	return nil
}

// Recent returns the newest records, newest first.
func (r *DecisionRepo) Recent(
	ctx context.Context,
	limit int,
) ([]*domain.DecisionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}

	out := make([]*domain.DecisionRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.records[i]
		out = append(out, &cp)
	}
	return out, nil
}

// CountByTechnique tallies stored decisions per primary technique.
func (r *DecisionRepo) CountByTechnique(
	ctx context.Context,
) (map[domain.HandlingTechnique]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.HandlingTechnique]int)
	for _, rec := range r.records {
		counts[rec.Decision.Technique]++
	}
	return counts, nil
}

// DeleteOlderThan removes records created before the cutoff.
func (r *DecisionRepo) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var deleted int64
	for _, rec := range r.records {
		if rec.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}
