// Package bitslice splits a variable into boolean digits and packs ranges of
// those digits back into variables.
package bitslice

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/bits"
)

// Decompose returns width boolean digits of value, least significant first.
// The constraints are unsatisfiable when value does not fit in width bits.
func Decompose(api frontend.API, value frontend.Variable, width int) []frontend.Variable {
	if width <= 0 {
		panic(fmt.Sprintf("invalid width %d", width))
	}
	return bits.ToBinary(api, value, bits.WithNbDigits(width))
}

// Slice packs bits[start:end) into a single variable, bits[start] being the
// least significant digit.
func Slice(api frontend.API, bits []frontend.Variable, start, end int) frontend.Variable {
	if start < 0 || start > end || end > len(bits) {
		panic(fmt.Sprintf("invalid slice [%d,%d) of %d bits", start, end, len(bits)))
	}
	var res frontend.Variable = 0
	for i := start; i < end; i++ {
		res = api.Add(res, api.Mul(bits[i], pow2(i-start)))
	}
	return res
}

func pow2(i int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(i))
}
