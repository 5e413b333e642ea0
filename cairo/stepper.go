package cairo

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/PolyhedraZK/ObliviousCairo/std/rangecheck"
)

// ErrInvalidLookupBits is returned for a non-positive lookup width.
var ErrInvalidLookupBits = errors.New("lookup bits must be positive")

// Config parameterises the step relation.
type Config struct {
	// LookupBits is the limb width of range checks. Required.
	LookupBits int
	// CheckIndices bounds the addresses the step depends on (pc, op0, op1
	// and dst) by the memory size.
	CheckIndices bool
	// Gather selects how dependent reads are built.
	Gather GatherMode
}

// Stepper evaluates one machine step inside a circuit.
type Stepper struct {
	cfg Config
}

// NewStepper validates cfg.
func NewStepper(cfg Config) (*Stepper, error) {
	if cfg.LookupBits <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLookupBits, cfg.LookupBits)
	}
	if cfg.Gather != GatherIndicator && cfg.Gather != GatherStrict {
		return nil, fmt.Errorf("unknown gather mode %d", cfg.Gather)
	}
	return &Stepper{cfg: cfg}, nil
}

// Config returns the stepper configuration.
func (s *Stepper) Config() Config {
	return s.cfg
}

// StepResult exposes the next registers along with the intermediate values,
// for callers that want to constrain or publish them.
type StepResult struct {
	Instruction frontend.Variable
	Decoded     Decoded
	Operands    Operands
	Dst         frontend.Variable
	DstAddr     frontend.Variable
	Next        Registers
}

// Step fetches memory[pc], decodes it and computes the next registers. The
// relation has no data-dependent branches: every path is evaluated and the
// decoded flags select the result.
func (s *Stepper) Step(api frontend.API, memory []frontend.Variable, regs Registers) StepResult {
	mem := &Memory{Cells: memory, Mode: s.cfg.Gather}

	word := mem.Load(api, regs.PC)
	d := Decode(api, word)
	ops := ResolveOperands(api, mem, regs, d)
	tr := NextState(api, mem, regs, d, ops)

	if s.cfg.CheckIndices {
		rc := rangecheck.New(api, s.cfg.LookupBits)
		for _, addr := range []frontend.Variable{regs.PC, ops.Op0Addr, ops.Op1Addr, tr.DstAddr} {
			rc.AssertLessThan(addr, mem.Size())
		}
	}

	return StepResult{
		Instruction: word,
		Decoded:     d,
		Operands:    ops,
		Dst:         tr.Dst,
		DstAddr:     tr.DstAddr,
		Next:        tr.Next,
	}
}
