// Package advisor implements the failure classification policy: a pure,
// total mapping from a FailureSituation to a recommended HandlingTechnique.
// It has no dependencies on storage, transport, or the clock.
package advisor

import (
	"github.com/vietddude/advisor/internal/core/domain"
)

// Advise returns the handling recommendation for a situation.
// It is deterministic and side-effect free: identical input always
// yields an identical decision.
func Advise(s domain.FailureSituation) (domain.Decision, error) {
	if err := s.Validate(); err != nil {
		return domain.Decision{}, err
	}
	s = s.Normalized()

	if s.Recoverable {
		return adviseRecoverable(s), nil
	}

	// Process boundaries terminate with a specific exit status regardless
	// of origin. The severity-appropriate technique stays as an alternative.
	if s.AtProcessBoundary {
		return adviseBoundary(s), nil
	}

	if s.ProgrammerError {
		return adviseProgrammerError(s), nil
	}

	return domain.Decision{
		Technique:    domain.TechniqueFatalError,
		Alternatives: []domain.HandlingTechnique{domain.TechniquePrecondition},
		Advisory:     true,
		Rationale:    "unrecoverable external state; halt with a message",
	}, nil
}

func adviseRecoverable(s domain.FailureSituation) domain.Decision {
	if s.CallPath == domain.CallPathAsync {
		return domain.Decision{
			Technique: domain.TechniqueReturnNil,
			Rationale: "recoverable on an async path; no structured handling at the boundary",
		}
	}
	return domain.Decision{
		Technique: domain.TechniqueThrowError,
		Rationale: "recoverable on a sync path; caller can handle structurally",
	}
}

func adviseProgrammerError(s domain.FailureSituation) domain.Decision {
	if s.Enforcement == domain.EnforcementDebugOnly {
		return domain.Decision{
			Technique:    domain.TechniqueAssert,
			Alternatives: []domain.HandlingTechnique{domain.TechniquePrecondition},
			Advisory:     true,
			Rationale:    "programmer error checked in debug builds only",
		}
	}
	return domain.Decision{
		Technique:    domain.TechniquePrecondition,
		Alternatives: []domain.HandlingTechnique{domain.TechniqueAssert},
		Advisory:     true,
		Rationale:    "programmer error that must halt in every build",
	}
}

func adviseBoundary(s domain.FailureSituation) domain.Decision {
	alt := domain.TechniqueFatalError
	if s.ProgrammerError {
		alt = domain.TechniquePrecondition
	}
	return domain.Decision{
		Technique:    domain.TechniqueProcessExit,
		Alternatives: []domain.HandlingTechnique{alt},
		Rationale:    "process entry point; terminate with a specific exit status",
	}
}
