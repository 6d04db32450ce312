package domain

import "testing"

func TestTechniqueSeverityOrder(t *testing.T) {
	ordered := Techniques()
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Severity() <= ordered[i-1].Severity() {
			t.Errorf("%s (%d) should rank above %s (%d)",
				ordered[i], ordered[i].Severity(), ordered[i-1], ordered[i-1].Severity())
		}
	}
}

func TestTechniqueHalts(t *testing.T) {
	if TechniqueReturnNil.Halts() || TechniqueThrowError.Halts() {
		t.Error("error-propagating techniques must not halt")
	}
	for _, technique := range []HandlingTechnique{
		TechniqueAssert, TechniquePrecondition, TechniqueFatalError, TechniqueProcessExit,
	} {
		if !technique.Halts() {
			t.Errorf("%s should halt", technique)
		}
	}
}

func TestTechniqueValid(t *testing.T) {
	if HandlingTechnique("shrug").Valid() {
		t.Error("undefined technique must not validate")
	}
	if HandlingTechnique("shrug").Severity() != -1 {
		t.Error("undefined technique must rank below every defined one")
	}
}

func TestSituationNormalized(t *testing.T) {
	s := FailureSituation{ProgrammerError: true}.Normalized()
	if s.Enforcement != EnforcementAlways {
		t.Errorf("expected default enforcement always, got %q", s.Enforcement)
	}

	s = FailureSituation{Recoverable: false, CallPath: CallPathSync}.Normalized()
	if s.CallPath != "" {
		t.Error("call path should be cleared for non-recoverable situations")
	}
}
