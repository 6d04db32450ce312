package domain

// HandlingTechnique is a recommended way to surface a failure.
type HandlingTechnique string

const (
	// TechniqueReturnNil: hand back a nil/error value at an async boundary
	// where no structured handling exists.
	TechniqueReturnNil HandlingTechnique = "return_nil_or_error_value"
	// TechniqueThrowError: raise a typed error for the caller to handle.
	TechniqueThrowError HandlingTechnique = "throw_error"
	// TechniqueAssert: debug-build-only check, no-op when optimized.
	TechniqueAssert HandlingTechnique = "assert"
	// TechniquePrecondition: check that halts in every build.
	TechniquePrecondition HandlingTechnique = "precondition"
	// TechniqueFatalError: unconditional halt with a message, for
	// unrecoverable external state.
	TechniqueFatalError HandlingTechnique = "fatal_error"
	// TechniqueProcessExit: terminate the process with a specific status.
	TechniqueProcessExit HandlingTechnique = "process_exit"
)

// techniqueSeverity orders techniques from "caller continues" to "process dies".
var techniqueSeverity = map[HandlingTechnique]int{
	TechniqueReturnNil:    0,
	TechniqueThrowError:   1,
	TechniqueAssert:       2,
	TechniquePrecondition: 3,
	TechniqueFatalError:   4,
	TechniqueProcessExit:  5,
}

// Severity returns the technique's position on the halting continuum.
// Unknown techniques rank below every defined one.
func (t HandlingTechnique) Severity() int {
	if s, ok := techniqueSeverity[t]; ok {
		return s
	}
	return -1
}

// Halts reports whether applying the technique stops execution
// (in at least some build configuration).
func (t HandlingTechnique) Halts() bool {
	return t.Severity() >= techniqueSeverity[TechniqueAssert]
}

// Valid reports whether t is one of the defined techniques.
func (t HandlingTechnique) Valid() bool {
	_, ok := techniqueSeverity[t]
	return ok
}

func (t HandlingTechnique) String() string {
	return string(t)
}

// Techniques lists every defined technique in severity order.
func Techniques() []HandlingTechnique {
	return []HandlingTechnique{
		TechniqueReturnNil,
		TechniqueThrowError,
		TechniqueAssert,
		TechniquePrecondition,
		TechniqueFatalError,
		TechniqueProcessExit,
	}
}
