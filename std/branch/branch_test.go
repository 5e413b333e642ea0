package branch

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

type selectCircuit struct {
	A, B, Flag frontend.Variable
	Expected   frontend.Variable
}

func (c *selectCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(Select(api, c.A, c.B, c.Flag), c.Expected)
	return nil
}

type cascadeCircuit struct {
	Def      frontend.Variable
	Flags    [3]frontend.Variable
	Values   [3]frontend.Variable
	Expected frontend.Variable
}

func (c *cascadeCircuit) Define(api frontend.API) error {
	cases := make([]Case, len(c.Flags))
	for i := range c.Flags {
		cases[i] = Case{Flag: c.Flags[i], Value: c.Values[i]}
	}
	api.AssertIsEqual(Cascade(api, c.Def, cases...), c.Expected)
	return nil
}

func TestSelect(t *testing.T) {
	testCases := []struct {
		name       string
		a, b, flag int
		expected   frontend.Variable
	}{
		{"flag set", 11, 22, 1, 11},
		{"flag clear", 11, 22, 0, 22},
		{"equal arms", 7, 7, 1, 7},
		// 3*11 + (1-3)*22 = -11
		{"non-boolean blend", 11, 22, 3, new(big.Int).Sub(ecc.BN254.ScalarField(), big.NewInt(11))},
		// 2*5 - 1*9 = 1
		{"non-boolean blend 2", 5, 9, 2, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assignment := &selectCircuit{A: tc.a, B: tc.b, Flag: tc.flag, Expected: tc.expected}
			require.NoError(t, test.IsSolved(&selectCircuit{}, assignment, ecc.BN254.ScalarField()))
		})
	}
}

func TestSelectWrongValue(t *testing.T) {
	assignment := &selectCircuit{A: 11, B: 22, Flag: 1, Expected: 22}
	require.Error(t, test.IsSolved(&selectCircuit{}, assignment, ecc.BN254.ScalarField()))
}

func TestCascade(t *testing.T) {
	values := [3]frontend.Variable{10, 20, 30}
	testCases := []struct {
		name     string
		flags    [3]frontend.Variable
		expected int
	}{
		{"default", [3]frontend.Variable{0, 0, 0}, 99},
		{"first", [3]frontend.Variable{1, 0, 0}, 10},
		{"second", [3]frontend.Variable{0, 1, 0}, 20},
		{"third", [3]frontend.Variable{0, 0, 1}, 30},
		{"last set flag wins", [3]frontend.Variable{1, 1, 0}, 20},
		{"all set", [3]frontend.Variable{1, 1, 1}, 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assignment := &cascadeCircuit{Def: 99, Flags: tc.flags, Values: values, Expected: tc.expected}
			require.NoError(t, test.IsSolved(&cascadeCircuit{}, assignment, ecc.BN254.ScalarField()))
		})
	}
}
