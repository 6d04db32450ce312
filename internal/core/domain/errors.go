package domain

import "fmt"

// InvalidSituationError rejects input outside the defined situation domain.
// The advisor never guesses around malformed input.
type InvalidSituationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidSituationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid situation: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid situation: %s %q: %s", e.Field, e.Value, e.Reason)
}

// Validate checks that the situation lies inside the advisor's input domain.
func (s FailureSituation) Validate() error {
	if s.Recoverable {
		switch s.CallPath {
		case CallPathSync, CallPathAsync:
		case "":
			return &InvalidSituationError{
				Field:  "call_path",
				Reason: "required for recoverable situations",
			}
		default:
			return &InvalidSituationError{
				Field:  "call_path",
				Value:  string(s.CallPath),
				Reason: "must be sync or async",
			}
		}
	}

	switch s.Enforcement {
	case "", EnforcementAlways, EnforcementDebugOnly:
	default:
		return &InvalidSituationError{
			Field:  "enforcement",
			Value:  string(s.Enforcement),
			Reason: "must be always or debug-only",
		}
	}

	return nil
}
