// Package rangecheck bounds variables using limbs of a fixed lookup width.
//
// The lookup width is a circuit-wide granularity chosen once by the caller
// (LOOKUP_BITS). A value is split into limbs of that width, every limb is
// checked by gnark's range checker and the recomposition is asserted equal to
// the value, so the same table size serves every bound.
package rangecheck

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark/frontend"
	gnarkrc "github.com/consensys/gnark/std/rangecheck"
)

// Checker performs range checks with limbs of LookupBits bits.
type Checker struct {
	api        frontend.API
	rc         frontend.Rangechecker
	lookupBits int
}

// New returns a checker for api. lookupBits must be positive.
func New(api frontend.API, lookupBits int) *Checker {
	if lookupBits <= 0 {
		panic(fmt.Sprintf("invalid lookup bits %d", lookupBits))
	}
	return &Checker{
		api:        api,
		rc:         gnarkrc.New(api),
		lookupBits: lookupBits,
	}
}

// LookupBits returns the limb width.
func (c *Checker) LookupBits() int {
	return c.lookupBits
}

// Check asserts 0 <= v < 2^nbBits.
func (c *Checker) Check(v frontend.Variable, nbBits int) {
	if nbBits < 0 {
		panic(fmt.Sprintf("invalid bit width %d", nbBits))
	}
	if nbBits == 0 {
		c.api.AssertIsEqual(v, 0)
		return
	}
	nbLimbs := (nbBits + c.lookupBits - 1) / c.lookupBits
	limbs, err := c.api.Compiler().NewHint(limbsHint, nbLimbs, c.lookupBits, v)
	if err != nil {
		panic(err)
	}
	var acc frontend.Variable = 0
	for i, limb := range limbs {
		width := c.lookupBits
		if i == nbLimbs-1 {
			width = nbBits - c.lookupBits*(nbLimbs-1)
		}
		c.rc.Check(limb, width)
		acc = c.api.Add(acc, c.api.Mul(limb, new(big.Int).Lsh(big.NewInt(1), uint(i*c.lookupBits))))
	}
	c.api.AssertIsEqual(acc, v)
}

// AssertLessThan asserts 0 <= v < bound for a constant bound.
func (c *Checker) AssertLessThan(v frontend.Variable, bound int) {
	if bound <= 0 {
		panic(fmt.Sprintf("invalid bound %d", bound))
	}
	nbBits := bits.Len(uint(bound - 1))
	c.Check(v, nbBits)
	c.Check(c.api.Sub(bound-1, v), nbBits)
}
