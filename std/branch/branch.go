// Package branch replaces conditionals with arithmetic selection so that
// every path is evaluated and the taken one is picked by boolean flags.
package branch

import "github.com/consensys/gnark/frontend"

// Select returns flag*a + (1-flag)*b.
//
// Unlike api.Select, flag is not asserted boolean: callers pass digits that are
// already constrained, and a non-boolean flag yields the linear blend.
func Select(api frontend.API, a, b, flag frontend.Variable) frontend.Variable {
	return api.Add(api.Mul(flag, api.Sub(a, b)), b)
}

// Case is one arm of a Cascade.
type Case struct {
	Flag  frontend.Variable
	Value frontend.Variable
}

// Cascade starts from def and lets every case whose flag is set replace the
// running value, in order. With one-hot flags this is an n-way switch; when
// several flags are set the last one wins.
func Cascade(api frontend.API, def frontend.Variable, cases ...Case) frontend.Variable {
	out := def
	for _, c := range cases {
		out = Select(api, c.Value, out, c.Flag)
	}
	return out
}
