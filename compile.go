package oblivious

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
)

// CompileResult is a circuit compiled for one curve and one proof system.
type CompileResult struct {
	curve   ecc.ID
	backend Backend
	cs      constraint.ConstraintSystem
}

// Stats summarises the size of a compiled circuit.
type Stats struct {
	NbConstraints int
	NbInternal    int
	NbSecret      int
	NbPublic      int
}

// Compile compiles circuit over the scalar field of curve, with the
// arithmetisation required by backend.
func Compile(curve ecc.ID, backend Backend, circuit frontend.Circuit, opts ...frontend.CompileOption) (*CompileResult, error) {
	var newBuilder frontend.NewBuilder
	switch backend {
	case Groth16:
		newBuilder = r1cs.NewBuilder
	case Plonk:
		newBuilder = scs.NewBuilder
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, backend)
	}
	cs, err := frontend.Compile(curve.ScalarField(), newBuilder, circuit, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	res := &CompileResult{
		curve:   curve,
		backend: backend,
		cs:      cs,
	}
	stats := res.GetStats()
	log := logger.Logger()
	log.Info().
		Str("curve", curve.String()).
		Str("backend", backend.String()).
		Int("nbConstraints", stats.NbConstraints).
		Int("nbInternal", stats.NbInternal).
		Int("nbSecret", stats.NbSecret).
		Int("nbPublic", stats.NbPublic).
		Msg("compiled")
	return res, nil
}

func (c *CompileResult) Curve() ecc.ID {
	return c.curve
}

func (c *CompileResult) Backend() Backend {
	return c.backend
}

func (c *CompileResult) GetStats() Stats {
	internal, secret, public := c.cs.GetNbVariables()
	return Stats{
		NbConstraints: c.cs.GetNbConstraints(),
		NbInternal:    internal,
		NbSecret:      secret,
		NbPublic:      public,
	}
}

// GetWitness builds the full witness of assignment.
func (c *CompileResult) GetWitness(assignment frontend.Circuit) (witness.Witness, error) {
	w, err := frontend.NewWitness(assignment, c.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}
	return w, nil
}

// Check solves the constraint system for assignment without proving.
func (c *CompileResult) Check(assignment frontend.Circuit) error {
	w, err := c.GetWitness(assignment)
	if err != nil {
		return err
	}
	if err := c.cs.IsSolved(w); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSatisfied, err)
	}
	return nil
}
