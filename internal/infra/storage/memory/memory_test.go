package memory

import (
	"context"
	"testing"
	"time"

	"github.com/vietddude/advisor/internal/core/domain"
)

func record(id string, technique domain.HandlingTechnique, createdAt time.Time) *domain.DecisionRecord {
	return &domain.DecisionRecord{
		ID:        id,
		Decision:  domain.Decision{Technique: technique},
		Source:    domain.SourceAPI,
		CreatedAt: createdAt,
	}
}

func TestDecisionRepo_RecentOrder(t *testing.T) {
	repo := NewDecisionRepo()
	ctx := context.Background()
	now := time.Now()

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Add(ctx, record(id, domain.TechniqueThrowError, now.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].ID != "c" || recent[1].ID != "b" {
		t.Errorf("expected newest first (c, b), got (%s, %s)", recent[0].ID, recent[1].ID)
	}
}

func TestDecisionRepo_CountByTechnique(t *testing.T) {
	repo := NewDecisionRepo()
	ctx := context.Background()
	now := time.Now()

	_ = repo.Add(ctx, record("a", domain.TechniqueThrowError, now))
	_ = repo.Add(ctx, record("b", domain.TechniqueThrowError, now))
	_ = repo.Add(ctx, record("c", domain.TechniquePrecondition, now))

	counts, err := repo.CountByTechnique(ctx)
	if err != nil {
		t.Fatalf("CountByTechnique failed: %v", err)
	}
	if counts[domain.TechniqueThrowError] != 2 {
		t.Errorf("expected 2 throw_error, got %d", counts[domain.TechniqueThrowError])
	}
	if counts[domain.TechniquePrecondition] != 1 {
		t.Errorf("expected 1 precondition, got %d", counts[domain.TechniquePrecondition])
	}
}

func TestDecisionRepo_DeleteOlderThan(t *testing.T) {
	repo := NewDecisionRepo()
	ctx := context.Background()
	now := time.Now()

	_ = repo.Add(ctx, record("old", domain.TechniqueAssert, now.Add(-2*time.Hour)))
	_ = repo.Add(ctx, record("new", domain.TechniqueAssert, now))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "new" {
		t.Errorf("expected only 'new' to remain, got %v", recent)
	}
}
