package cairo

import (
	"github.com/consensys/gnark/frontend"

	"github.com/PolyhedraZK/ObliviousCairo/std/branch"
)

// Registers is the (pc, ap, fp) triple between two steps.
type Registers struct {
	PC frontend.Variable
	AP frontend.Variable
	FP frontend.Variable
}

// Operands are the values an instruction computes on.
type Operands struct {
	// Op0Addr is the address op0 was selected from.
	Op0Addr frontend.Variable
	Op0     frontend.Variable
	// Size is the instruction length in words, 2 with an immediate.
	Size    frontend.Variable
	Op1Addr frontend.Variable
	Op1     frontend.Variable
	Res     frontend.Variable
}

// ResolveOperands computes op0, op1, the instruction size and res.
//
// Both op0 candidates (fp-based and ap-based) are read and op0_reg picks one.
// The op1 base defaults to op0 and is overridden by pc, fp then ap; res
// defaults to op1 and is overridden by op0+op1 then op0*op1.
func ResolveOperands(api frontend.API, mem *Memory, regs Registers, d Decoded) Operands {
	fpAddr := api.Add(regs.FP, d.OffOp0)
	apAddr := api.Add(regs.AP, d.OffOp0)
	op0 := branch.Select(api, mem.Probe(api, fpAddr), mem.Probe(api, apAddr), d.Op0Reg)
	op0Addr := branch.Select(api, fpAddr, apAddr, d.Op0Reg)

	size := branch.Select(api, 2, 1, d.Op1Imm)

	base := branch.Cascade(api, op0,
		branch.Case{Flag: d.Op1Imm, Value: regs.PC},
		branch.Case{Flag: d.Op1FP, Value: regs.FP},
		branch.Case{Flag: d.Op1AP, Value: regs.AP},
	)
	op1Addr := api.Add(base, d.OffOp1)
	op1 := mem.Load(api, op1Addr)

	res := branch.Cascade(api, op1,
		branch.Case{Flag: d.ResAdd, Value: api.Add(op0, op1)},
		branch.Case{Flag: d.ResMul, Value: api.Mul(op0, op1)},
	)

	return Operands{
		Op0Addr: op0Addr,
		Op0:     op0,
		Size:    size,
		Op1Addr: op1Addr,
		Op1:     op1,
		Res:     res,
	}
}
