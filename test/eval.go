package test

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"

	oblivious "github.com/PolyhedraZK/ObliviousCairo"
)

// CheckCircuit compiles circuit to R1CS over curve and solves it for
// assignment. A nil error means every constraint holds.
func CheckCircuit(curve ecc.ID, circuit, assignment frontend.Circuit) error {
	cr, err := oblivious.Compile(curve, oblivious.Groth16, circuit)
	if err != nil {
		return err
	}
	return cr.Check(assignment)
}
