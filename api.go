// Package oblivious compiles, checks, proves and verifies circuits such
// as the oblivious Cairo step relation on gnark backends.
package oblivious

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBackend  = errors.New("unknown backend")
	ErrNotSatisfied    = errors.New("constraint system not satisfied")
	ErrBackendMismatch = errors.New("backend mismatch")
)

// Backend is a proof system.
type Backend int

const (
	Groth16 Backend = iota
	Plonk
)

func (b Backend) String() string {
	switch b {
	case Groth16:
		return "groth16"
	case Plonk:
		return "plonk"
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// BackendFromString parses "groth16" or "plonk".
func BackendFromString(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "groth16":
		return Groth16, nil
	case "plonk":
		return Plonk, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}
