package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vietddude/advisor/internal/core/domain"
)

// DecisionRepo implements storage.DecisionRepository using PostgreSQL.
type DecisionRepo struct {
	db *DB
}

// NewDecisionRepo creates a new PostgreSQL decision repository.
func NewDecisionRepo(db *DB) *DecisionRepo {
	return &DecisionRepo{db: db}
}

// decisionRow is the flat row shape of the decisions table.
type decisionRow struct {
	ID                string    `db:"id"`
	Recoverable       bool      `db:"recoverable"`
	ProgrammerError   bool      `db:"programmer_error"`
	CallPath          string    `db:"call_path"`
	Enforcement       string    `db:"enforcement"`
	AtProcessBoundary bool      `db:"at_process_boundary"`
	Component         string    `db:"component"`
	Operation         string    `db:"operation"`
	Technique         string    `db:"technique"`
	Alternatives      string    `db:"alternatives"`
	Advisory          bool      `db:"advisory"`
	Rationale         string    `db:"rationale"`
	Source            string    `db:"source"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r decisionRow) toRecord() *domain.DecisionRecord {
	var alts []domain.HandlingTechnique
	if r.Alternatives != "" {
		for _, a := range strings.Split(r.Alternatives, ",") {
			alts = append(alts, domain.HandlingTechnique(a))
		}
	}
	return &domain.DecisionRecord{
		ID: r.ID,
		Situation: domain.FailureSituation{
			Recoverable:       r.Recoverable,
			ProgrammerError:   r.ProgrammerError,
			CallPath:          domain.CallPath(r.CallPath),
			Enforcement:       domain.Enforcement(r.Enforcement),
			AtProcessBoundary: r.AtProcessBoundary,
			Component:         r.Component,
			Operation:         r.Operation,
		},
		Decision: domain.Decision{
			Technique:    domain.HandlingTechnique(r.Technique),
			Alternatives: alts,
			Advisory:     r.Advisory,
			Rationale:    r.Rationale,
		},
		Source:    domain.DecisionSource(r.Source),
		CreatedAt: r.CreatedAt,
	}
}

func joinAlternatives(alts []domain.HandlingTechnique) string {
	parts := make([]string, len(alts))
	for i, a := range alts {
		parts[i] = string(a)
	}
	return strings.Join(parts, ",")
}

// Add stores a decision record.
func (r *DecisionRepo) Add(ctx context.Context, rec *domain.DecisionRecord) error {
	query := `
		INSERT INTO decisions (
			id, recoverable, programmer_error, call_path, enforcement,
			at_process_boundary, component, operation,
			technique, alternatives, advisory, rationale, source, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Situation.Recoverable,
		rec.Situation.ProgrammerError,
		string(rec.Situation.CallPath),
		string(rec.Situation.Enforcement),
		rec.Situation.AtProcessBoundary,
		rec.Situation.Component,
		rec.Situation.Operation,
		string(rec.Decision.Technique),
		joinAlternatives(rec.Decision.Alternatives),
		rec.Decision.Advisory,
		rec.Decision.Rationale,
		string(rec.Source),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add decision: %w", err)
	}
	return nil
}

// Recent returns the newest records, newest first.
func (r *DecisionRepo) Recent(
	ctx context.Context,
	limit int,
) ([]*domain.DecisionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, recoverable, programmer_error, call_path, enforcement,
		       at_process_boundary, component, operation,
		       technique, alternatives, advisory, rationale, source, created_at
		FROM decisions
		ORDER BY created_at DESC
		LIMIT $1
	`

	var rows []decisionRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}

	records := make([]*domain.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// CountByTechnique tallies stored decisions per primary technique.
func (r *DecisionRepo) CountByTechnique(
	ctx context.Context,
) (map[domain.HandlingTechnique]int, error) {
	query := `
		SELECT technique, COUNT(*) AS total
		FROM decisions
		GROUP BY technique
	`

	var rows []struct {
		Technique string `db:"technique"`
		Total     int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count decisions: %w", err)
	}

	counts := make(map[domain.HandlingTechnique]int, len(rows))
	for _, row := range rows {
		counts[domain.HandlingTechnique(row.Technique)] = row.Total
	}
	return counts, nil
}

// DeleteOlderThan removes records created before the cutoff.
func (r *DecisionRepo) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		`DELETE FROM decisions WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune decisions: %w", err)
	}
	return res.RowsAffected()
}
