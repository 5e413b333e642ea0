package cairo

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// StepCircuit proves that one step from (PC, AP, FP) over Memory leads to the
// public (NextPC, NextAP, NextFP).
type StepCircuit struct {
	Memory []frontend.Variable
	PC     frontend.Variable
	AP     frontend.Variable
	FP     frontend.Variable

	NextPC frontend.Variable `gnark:",public"`
	NextAP frontend.Variable `gnark:",public"`
	NextFP frontend.Variable `gnark:",public"`

	cfg Config `gnark:"-"`
}

// NewStepCircuit returns a placeholder for compiling a step over memorySize cells.
func NewStepCircuit(memorySize int, cfg Config) *StepCircuit {
	return &StepCircuit{
		Memory: make([]frontend.Variable, memorySize),
		cfg:    cfg,
	}
}

// NewStepAssignment returns the witness of the step from s to next.
func NewStepAssignment(memory []*big.Int, s, next State) *StepCircuit {
	return &StepCircuit{
		Memory: toVariables(memory),
		PC:     s.PC,
		AP:     s.AP,
		FP:     s.FP,
		NextPC: next.PC,
		NextAP: next.AP,
		NextFP: next.FP,
	}
}

// Define declares the step relation.
func (c *StepCircuit) Define(api frontend.API) error {
	s, err := NewStepper(c.cfg)
	if err != nil {
		return err
	}
	res := s.Step(api, c.Memory, Registers{PC: c.PC, AP: c.AP, FP: c.FP})
	api.AssertIsEqual(res.Next.PC, c.NextPC)
	api.AssertIsEqual(res.Next.AP, c.NextAP)
	api.AssertIsEqual(res.Next.FP, c.NextFP)
	return nil
}

// TraceCircuit chains Steps steps, each one's registers feeding the next,
// and exposes the final registers.
type TraceCircuit struct {
	Memory []frontend.Variable
	PC     frontend.Variable
	AP     frontend.Variable
	FP     frontend.Variable

	FinalPC frontend.Variable `gnark:",public"`
	FinalAP frontend.Variable `gnark:",public"`
	FinalFP frontend.Variable `gnark:",public"`

	steps int    `gnark:"-"`
	cfg   Config `gnark:"-"`
}

// NewTraceCircuit returns a placeholder for compiling steps steps over
// memorySize cells.
func NewTraceCircuit(memorySize, steps int, cfg Config) *TraceCircuit {
	return &TraceCircuit{
		Memory: make([]frontend.Variable, memorySize),
		steps:  steps,
		cfg:    cfg,
	}
}

// NewTraceAssignment returns the witness of a run from s ending in final.
func NewTraceAssignment(memory []*big.Int, s, final State) *TraceCircuit {
	return &TraceCircuit{
		Memory:  toVariables(memory),
		PC:      s.PC,
		AP:      s.AP,
		FP:      s.FP,
		FinalPC: final.PC,
		FinalAP: final.AP,
		FinalFP: final.FP,
	}
}

// Define declares the chained relation.
func (c *TraceCircuit) Define(api frontend.API) error {
	if c.steps <= 0 {
		return fmt.Errorf("trace needs at least one step, got %d", c.steps)
	}
	s, err := NewStepper(c.cfg)
	if err != nil {
		return err
	}
	regs := Registers{PC: c.PC, AP: c.AP, FP: c.FP}
	for i := 0; i < c.steps; i++ {
		regs = s.Step(api, c.Memory, regs).Next
	}
	api.AssertIsEqual(regs.PC, c.FinalPC)
	api.AssertIsEqual(regs.AP, c.FinalAP)
	api.AssertIsEqual(regs.FP, c.FinalFP)
	return nil
}

func toVariables(xs []*big.Int) []frontend.Variable {
	vs := make([]frontend.Variable, len(xs))
	for i, x := range xs {
		vs[i] = x
	}
	return vs
}
