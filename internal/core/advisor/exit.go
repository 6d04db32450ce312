package advisor

import "github.com/vietddude/advisor/internal/core/domain"

// Exit codes form the operational contract with CI and operators.
const (
	ExitOK            = 0
	ExitInvalidConfig = 2 // configuration or logic defect
	ExitRuntime       = 4 // unrecoverable runtime failure
)

// ExitStatus maps a process-boundary decision to its exit status.
// Non-terminating techniques map to ExitOK: the process is expected
// to keep running after handling.
func ExitStatus(s domain.FailureSituation, d domain.Decision) int {
	if d.Technique != domain.TechniqueProcessExit && !d.Technique.Halts() {
		return ExitOK
	}
	if s.ProgrammerError {
		return ExitInvalidConfig
	}
	return ExitRuntime
}
