package advising

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vietddude/advisor/internal/core/domain"
)

// =============================================================================
// Mocks
// =============================================================================

type mockRepo struct {
	mu      sync.Mutex
	records []*domain.DecisionRecord
	failAdd bool
}

func (r *mockRepo) Add(ctx context.Context, rec *domain.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd {
		return errors.New("db down")
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *mockRepo) Recent(ctx context.Context, limit int) ([]*domain.DecisionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records, nil
}

func (r *mockRepo) CountByTechnique(ctx context.Context) (map[domain.HandlingTechnique]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.HandlingTechnique]int)
	for _, rec := range r.records {
		counts[rec.Decision.Technique]++
	}
	return counts, nil
}

func (r *mockRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockQueue struct {
	mu     sync.Mutex
	queued []*domain.DecisionRecord
	tally  map[domain.HandlingTechnique]int
}

func newMockQueue() *mockQueue {
	return &mockQueue{tally: make(map[domain.HandlingTechnique]int)}
}

func (q *mockQueue) PushReview(ctx context.Context, rec *domain.DecisionRecord) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = append(q.queued, rec)
	return nil
}

func (q *mockQueue) PendingReviews(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.queued)), nil
}

func (q *mockQueue) IncrTally(ctx context.Context, t domain.HandlingTechnique) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tally[t]++
	return nil
}

// =============================================================================
// Tests
// =============================================================================

func TestService_Advise_Records(t *testing.T) {
	repo := &mockRepo{}
	queue := newMockQueue()
	svc := NewService(repo, queue)

	decision, err := svc.Advise(context.Background(), domain.FailureSituation{
		Recoverable: true,
		CallPath:    domain.CallPathSync,
		Component:   "fetcher",
	}, domain.SourceAPI)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if decision.Technique != domain.TechniqueThrowError {
		t.Errorf("expected throw_error, got %s", decision.Technique)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.ID == "" {
		t.Error("record missing ID")
	}
	if rec.Source != domain.SourceAPI {
		t.Errorf("expected source api, got %s", rec.Source)
	}
	if rec.Situation.Component != "fetcher" {
		t.Errorf("expected component fetcher, got %s", rec.Situation.Component)
	}

	// Non-advisory decisions are tallied but not queued for review.
	if len(queue.queued) != 0 {
		t.Errorf("non-advisory decision should not be queued, got %d", len(queue.queued))
	}
	if queue.tally[domain.TechniqueThrowError] != 1 {
		t.Error("expected technique tally bump")
	}
}

func TestService_Advise_EnqueuesAdvisory(t *testing.T) {
	repo := &mockRepo{}
	queue := newMockQueue()
	svc := NewService(repo, queue)

	decision, err := svc.Advise(context.Background(), domain.FailureSituation{
		ProgrammerError: true,
	}, domain.SourceCLI)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if !decision.Advisory {
		t.Fatal("expected advisory decision")
	}

	if len(queue.queued) != 1 {
		t.Fatalf("expected 1 queued review, got %d", len(queue.queued))
	}
	if queue.queued[0].Decision.Technique != domain.TechniquePrecondition {
		t.Errorf("expected precondition queued, got %s", queue.queued[0].Decision.Technique)
	}
}

func TestService_Advise_StorageFailureDoesNotAlterDecision(t *testing.T) {
	repo := &mockRepo{failAdd: true}
	svc := NewService(repo, nil)

	decision, err := svc.Advise(context.Background(), domain.FailureSituation{
		Recoverable: true,
		CallPath:    domain.CallPathAsync,
	}, domain.SourceAPI)
	if err != nil {
		t.Fatalf("Advise must not fail on storage errors: %v", err)
	}
	if decision.Technique != domain.TechniqueReturnNil {
		t.Errorf("expected return_nil_or_error_value, got %s", decision.Technique)
	}
}

func TestService_Advise_InvalidInput(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)

	_, err := svc.Advise(context.Background(), domain.FailureSituation{
		Recoverable: true, // missing call path
	}, domain.SourceAPI)
	if err == nil {
		t.Fatal("expected error")
	}
	var invalid *domain.InvalidSituationError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidSituationError, got %T", err)
	}
	if len(repo.records) != 0 {
		t.Error("invalid input must not be recorded")
	}
}

func TestService_AdviseError(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)

	decision, ok, err := svc.AdviseError(
		context.Background(),
		status.Error(codes.Unavailable, "backend down"),
	)
	if err != nil {
		t.Fatalf("AdviseError failed: %v", err)
	}
	if !ok {
		t.Fatal("expected classification")
	}
	if decision.Technique != domain.TechniqueThrowError {
		t.Errorf("expected throw_error, got %s", decision.Technique)
	}
	if len(repo.records) != 1 || repo.records[0].Source != domain.SourceClassifier {
		t.Error("expected one record from the classifier source")
	}

	// Unclassifiable errors answer ok=false without recording.
	_, ok, err = svc.AdviseError(context.Background(), errors.New("bespoke"))
	if err != nil {
		t.Fatalf("AdviseError failed: %v", err)
	}
	if ok {
		t.Error("expected no classification for unknown error")
	}
	if len(repo.records) != 1 {
		t.Error("unknown error must not be recorded")
	}
}
