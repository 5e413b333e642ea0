package cairo

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/PolyhedraZK/ObliviousCairo/field"
)

var (
	// ErrAddressOutOfRange is returned by a strict machine reading outside memory.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrInstructionTooWide is returned when memory[pc] has more than InstructionBits bits.
	ErrInstructionTooWide = errors.New("instruction word too wide")
)

// State is the native register triple.
type State struct {
	PC *big.Int
	AP *big.Int
	FP *big.Int
}

// NewState builds a state from small register values.
func NewState(pc, ap, fp int64) State {
	return State{PC: big.NewInt(pc), AP: big.NewInt(ap), FP: big.NewInt(fp)}
}

func (s State) String() string {
	return fmt.Sprintf("pc=%s ap=%s fp=%s", s.PC, s.AP, s.FP)
}

// Equal reports whether both states hold the same registers.
func (s State) Equal(o State) bool {
	return s.PC.Cmp(o.PC) == 0 && s.AP.Cmp(o.AP) == 0 && s.FP.Cmp(o.FP) == 0
}

// Machine evaluates steps natively, producing the values a prover assigns to
// the step circuit.
type Machine struct {
	Field  *field.Field
	Memory []*big.Int
	// Strict fails on reads of pc, op0, op1 or dst outside memory, matching a
	// circuit built with CheckIndices. Otherwise such reads yield 0, matching
	// the indicator gather.
	Strict bool
}

// Step executes the instruction at s.PC.
func (m *Machine) Step(s State) (State, error) {
	f := m.Field
	pc, ap, fp := f.Reduce(s.PC), f.Reduce(s.AP), f.Reduce(s.FP)

	word, err := m.load("pc", pc)
	if err != nil {
		return State{}, err
	}
	if word.BitLen() > InstructionBits {
		return State{}, fmt.Errorf("pc=%s: %w", pc, ErrInstructionTooWide)
	}
	ins := DecodeInstruction(word.Uint64())

	op0Base := ap
	if ins.Has(FlagOp0Reg) {
		op0Base = fp
	}
	op0, err := m.load("op0", f.Add(op0Base, offset(ins.OffOp0)))
	if err != nil {
		return State{}, err
	}

	size := big.NewInt(1)
	op1Base := op0
	if ins.Has(FlagOp1Imm) {
		size = big.NewInt(2)
		op1Base = pc
	}
	if ins.Has(FlagOp1FP) {
		op1Base = fp
	}
	if ins.Has(FlagOp1AP) {
		op1Base = ap
	}
	op1, err := m.load("op1", f.Add(op1Base, offset(ins.OffOp1)))
	if err != nil {
		return State{}, err
	}

	res := op1
	if ins.Has(FlagResAdd) {
		res = f.Add(op0, op1)
	}
	if ins.Has(FlagResMul) {
		res = f.Mul(op0, op1)
	}

	dstBase := ap
	if ins.Has(FlagDstReg) {
		dstBase = fp
	}
	dst, err := m.load("dst", f.Add(dstBase, offset(ins.OffDst)))
	if err != nil {
		return State{}, err
	}

	next := State{PC: f.Add(pc, size), AP: ap, FP: fp}
	if ins.Has(FlagPCJumpAbs) {
		next.PC = res
	}
	if ins.Has(FlagPCJumpRel) {
		next.PC = f.Add(pc, res)
	}
	if ins.Has(FlagPCJnz) && !f.IsZero(dst) {
		next.PC = f.Add(pc, op1)
	}
	if ins.Has(FlagAPAddRes) {
		next.AP = f.Add(ap, res)
	}
	if ins.Has(FlagAPAdd1) {
		next.AP = f.Add(ap, big.NewInt(1))
	}
	if ins.Has(FlagOpcodeRet) {
		next.FP = dst
	}
	if ins.Has(FlagOpcodeCall) {
		frame := f.Add(ap, big.NewInt(2))
		next.AP = frame
		next.FP = frame
	}
	return next, nil
}

// Run executes n steps from s and returns the n+1 visited states.
func (m *Machine) Run(s State, n int) ([]State, error) {
	trace := make([]State, 0, n+1)
	trace = append(trace, s)
	for i := 0; i < n; i++ {
		next, err := m.Step(s)
		if err != nil {
			return trace, fmt.Errorf("step %d: %w", i, err)
		}
		trace = append(trace, next)
		s = next
	}
	return trace, nil
}

func (m *Machine) load(what string, addr *big.Int) (*big.Int, error) {
	if addr.IsInt64() && addr.Int64() < int64(len(m.Memory)) {
		return m.Field.Reduce(m.Memory[addr.Int64()]), nil
	}
	if m.Strict {
		return nil, fmt.Errorf("%s address %s, memory size %d: %w", what, addr, len(m.Memory), ErrAddressOutOfRange)
	}
	return new(big.Int), nil
}

func offset(o uint16) *big.Int {
	return new(big.Int).SetUint64(uint64(o))
}
