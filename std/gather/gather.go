// Package gather reads an array at a variable index without native indexing.
//
// A read at index i is the inner product of the array with a one-hot
// indicator of i. The indicator costs one IsZero per position, so reads are
// linear in the array length; arrays here are small and the constraint system
// has no cheaper general random access.
package gather

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/selector"
)

// OneHot is an equality indicator: entry j is 1 when the index equals j and
// 0 otherwise. All entries are 0 for an index outside [0, len).
type OneHot []frontend.Variable

// NewOneHot builds the indicator of index over n positions. It can be reused
// by several reads at the same index.
func NewOneHot(api frontend.API, index frontend.Variable, n int) OneHot {
	if n <= 0 {
		panic(fmt.Sprintf("invalid indicator length %d", n))
	}
	ind := make(OneHot, n)
	for j := 0; j < n; j++ {
		ind[j] = api.IsZero(api.Sub(index, j))
	}
	return ind
}

// Read returns the entry of array selected by the indicator.
func (o OneHot) Read(api frontend.API, array []frontend.Variable) frontend.Variable {
	if len(array) != len(o) {
		panic(fmt.Sprintf("indicator over %d positions used on array of length %d", len(o), len(array)))
	}
	var res frontend.Variable = 0
	for j := range o {
		res = api.Add(res, api.Mul(o[j], array[j]))
	}
	return res
}

// Sum is 1 when the index is in range and 0 otherwise.
func (o OneHot) Sum(api frontend.API) frontend.Variable {
	var res frontend.Variable = 0
	for _, e := range o {
		res = api.Add(res, e)
	}
	return res
}

// Gather returns array[index] for every index in [0, len(array)). Out of
// range indices produce 0; callers that need a hard failure must range check
// the index first or use GatherMux.
func Gather(api frontend.API, array []frontend.Variable, index frontend.Variable) frontend.Variable {
	if len(array) == 0 {
		panic("gather from empty array")
	}
	return NewOneHot(api, index, len(array)).Read(api, array)
}

// GatherMux returns array[index] through selector.Mux, whose constraints
// are unsatisfiable when index is out of range.
func GatherMux(api frontend.API, array []frontend.Variable, index frontend.Variable) frontend.Variable {
	if len(array) == 0 {
		panic("gather from empty array")
	}
	return selector.Mux(api, index, array...)
}
