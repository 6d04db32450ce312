package domain

// CallPath describes how the failing operation delivers its result.
type CallPath string

const (
	// CallPathSync: the caller is on the stack and structured handling is available.
	CallPathSync CallPath = "sync"
	// CallPathAsync: completion arrives via callback or channel, outside any
	// structured handling scope.
	CallPathAsync CallPath = "async"
)

// Enforcement describes whether a programmer-error check survives release builds.
type Enforcement string

const (
	// EnforcementAlways: the check must halt execution in every build.
	EnforcementAlways Enforcement = "always"
	// EnforcementDebugOnly: the check may compile out of optimized builds.
	EnforcementDebugOnly Enforcement = "debug-only"
)

// FailureSituation describes a failure along the two dimensions the advisor
// classifies on, plus the qualifiers that pick a technique within a branch.
type FailureSituation struct {
	// Recoverable: continued execution after handling is meaningful.
	Recoverable bool `json:"recoverable"`

	// ProgrammerError: the condition stems from a logic or configuration
	// defect rather than an expected external event.
	ProgrammerError bool `json:"programmer_error"`

	// CallPath is required when Recoverable. Ignored otherwise.
	CallPath CallPath `json:"call_path,omitempty"`

	// Enforcement qualifies the non-recoverable programmer-error branch.
	// Zero value means EnforcementAlways.
	Enforcement Enforcement `json:"enforcement,omitempty"`

	// AtProcessBoundary: the failure is handled at a process entry point
	// that must terminate with a specific exit status.
	AtProcessBoundary bool `json:"at_process_boundary,omitempty"`

	// Component and Operation label the audit trail. Optional.
	Component string `json:"component,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Normalized returns a copy with zero-value qualifiers resolved to their
// defaults, so equal situations compare equal after normalization.
func (s FailureSituation) Normalized() FailureSituation {
	if s.Enforcement == "" {
		s.Enforcement = EnforcementAlways
	}
	if !s.Recoverable {
		s.CallPath = ""
	}
	return s
}
