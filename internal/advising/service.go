// Package advising wires the pure advisor to the service shell: every
// decision is audited, counted, and — when the guidance is a judgment
// call — queued for human review.
package advising

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/advisor/internal/advising/classify"
	"github.com/vietddude/advisor/internal/advising/metrics"
	"github.com/vietddude/advisor/internal/core/advisor"
	"github.com/vietddude/advisor/internal/core/domain"
	"github.com/vietddude/advisor/internal/infra/storage"
)

// ReviewQueue accepts advisory decisions for human triage.
type ReviewQueue interface {
	PushReview(ctx context.Context, rec *domain.DecisionRecord) error
	PendingReviews(ctx context.Context) (int64, error)
	IncrTally(ctx context.Context, technique domain.HandlingTechnique) error
}

// Service answers advisory requests and maintains the audit trail.
type Service struct {
	repo  storage.DecisionRepository
	queue ReviewQueue // nil when redis is not configured
	log   *slog.Logger
}

// NewService creates an advising service. queue may be nil.
func NewService(repo storage.DecisionRepository, queue ReviewQueue) *Service {
	return &Service{
		repo:  repo,
		queue: queue,
		log:   slog.Default().With("component", "advising"),
	}
}

// Advise classifies a situation and records the decision.
// Audit or queue failures are logged and counted but never change the
// decision: the classification itself is pure and always answers.
func (s *Service) Advise(
	ctx context.Context,
	situation domain.FailureSituation,
	source domain.DecisionSource,
) (domain.Decision, error) {
	decision, err := advisor.Advise(situation)
	if err != nil {
		var invalid *domain.InvalidSituationError
		if errors.As(err, &invalid) {
			metrics.InvalidSituationsTotal.Inc()
		}
		return domain.Decision{}, err
	}

	metrics.DecisionsTotal.WithLabelValues(decision.Technique.String(), string(source)).Inc()

	rec := &domain.DecisionRecord{
		ID:        uuid.New().String(),
		Situation: situation.Normalized(),
		Decision:  decision,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Add(ctx, rec); err != nil {
		metrics.RecordErrorsTotal.Inc()
		s.log.Error("Failed to record decision", "error", err, "technique", decision.Technique)
	}

	if s.queue != nil {
		s.enqueue(ctx, rec)
	}

	return decision, nil
}

// AdviseError classifies a live Go error and, when it carries a
// recognizable signal, answers for the derived situation.
func (s *Service) AdviseError(
	ctx context.Context,
	cause error,
) (domain.Decision, bool, error) {
	situation, ok := classify.FromError(cause)
	if !ok {
		return domain.Decision{}, false, nil
	}
	decision, err := s.Advise(ctx, situation, domain.SourceClassifier)
	if err != nil {
		return domain.Decision{}, false, err
	}
	return decision, true, nil
}

// Recent returns the newest audit records.
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.DecisionRecord, error) {
	return s.repo.Recent(ctx, limit)
}

// CountByTechnique tallies stored decisions per primary technique.
func (s *Service) CountByTechnique(ctx context.Context) (map[domain.HandlingTechnique]int, error) {
	return s.repo.CountByTechnique(ctx)
}

func (s *Service) enqueue(ctx context.Context, rec *domain.DecisionRecord) {
	if err := s.queue.IncrTally(ctx, rec.Decision.Technique); err != nil {
		s.log.Warn("Failed to bump technique tally", "error", err)
	}

	if !rec.Decision.Advisory {
		return
	}

	if err := s.queue.PushReview(ctx, rec); err != nil {
		s.log.Error("Failed to enqueue decision for review", "error", err, "id", rec.ID)
		return
	}
	if pending, err := s.queue.PendingReviews(ctx); err == nil {
		metrics.ReviewQueuePending.Set(float64(pending))
	}
}
