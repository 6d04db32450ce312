package domain

import "time"

// Decision is the advisor's full answer for a situation.
type Decision struct {
	// Technique is the primary recommendation.
	Technique HandlingTechnique `json:"technique"`

	// Alternatives holds the remaining candidates on continuum branches,
	// in severity order. Empty when the branch is fully determined.
	Alternatives []HandlingTechnique `json:"alternatives,omitempty"`

	// Advisory marks branches where the guidance is a judgment call
	// rather than a rule. Advisory decisions go to the review queue.
	Advisory bool `json:"advisory,omitempty"`

	// Rationale is a one-line explanation of the branch taken.
	Rationale string `json:"rationale"`
}

// Candidates returns the primary technique and its alternatives.
func (d Decision) Candidates() []HandlingTechnique {
	out := make([]HandlingTechnique, 0, 1+len(d.Alternatives))
	out = append(out, d.Technique)
	out = append(out, d.Alternatives...)
	return out
}

// DecisionSource identifies where an advisory request came from.
type DecisionSource string

const (
	SourceAPI        DecisionSource = "api"
	SourceCLI        DecisionSource = "cli"
	SourceClassifier DecisionSource = "classifier"
)

// DecisionRecord is the audit entry persisted for every advisory call.
type DecisionRecord struct {
	ID        string           `json:"id"`
	Situation FailureSituation `json:"situation"`
	Decision  Decision         `json:"decision"`
	Source    DecisionSource   `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
}
