package test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	gnarktest "github.com/consensys/gnark/test"
)

// Assert checks circuits both with gnark's test engine and by solving the
// compiled constraint system, so that hints are exercised through the solver.
type Assert struct {
	t     *testing.T
	curve ecc.ID
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, curve: ecc.BN254}
}

// WithCurve returns an Assert working over the scalar field of curve.
func (a *Assert) WithCurve(curve ecc.ID) *Assert {
	return &Assert{t: a.t, curve: curve}
}

// Solved only runs the test engine. It is cheap enough to call in loops.
func (a *Assert) Solved(circuit, assignment frontend.Circuit) {
	a.t.Helper()
	if err := gnarktest.IsSolved(circuit, assignment, a.curve.ScalarField()); err != nil {
		a.t.Fatalf("should succeed: %v", err)
	}
}

// NotSolved expects the test engine to reject assignment.
func (a *Assert) NotSolved(circuit, assignment frontend.Circuit) {
	a.t.Helper()
	if err := gnarktest.IsSolved(circuit, assignment, a.curve.ScalarField()); err == nil {
		a.t.Fatal("should fail")
	}
}

// ProveSucceeded expects assignment to satisfy circuit in the test engine
// and in the compiled constraint system.
func (a *Assert) ProveSucceeded(circuit, assignment frontend.Circuit) {
	a.t.Helper()
	a.Solved(circuit, assignment)
	if err := CheckCircuit(a.curve, circuit, assignment); err != nil {
		a.t.Fatalf("should succeed: %v", err)
	}
}

// ProveFailed expects assignment to be rejected by both.
func (a *Assert) ProveFailed(circuit, assignment frontend.Circuit) {
	a.t.Helper()
	a.NotSolved(circuit, assignment)
	if err := CheckCircuit(a.curve, circuit, assignment); err == nil {
		a.t.Fatal("should fail")
	}
}
