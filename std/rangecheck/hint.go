package rangecheck

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns the hints used by the checker. They must be provided to
// the solver when the circuit is not solved in this process.
func GetHints() []solver.Hint {
	return []solver.Hint{limbsHint}
}

// limbsHint splits inputs[1] into len(outputs) limbs of inputs[0] bits each,
// least significant first.
func limbsHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	limbBits := uint(inputs[0].Uint64())
	a := new(big.Int).Set(inputs[1])
	mask := new(big.Int).Lsh(big.NewInt(1), limbBits)
	mask.Sub(mask, big.NewInt(1))
	for i := range outputs {
		outputs[i].And(a, mask)
		a.Rsh(a, limbBits)
	}
	return nil
}
