package cairo

import (
	"github.com/consensys/gnark/frontend"

	"github.com/PolyhedraZK/ObliviousCairo/std/branch"
)

// Transition is the outcome of the next-state computation.
type Transition struct {
	DstAddr frontend.Variable
	Dst     frontend.Variable
	Next    Registers
}

// NextState computes dst and the next register triple.
//
// Override order, later wins:
//
//	pc: pc+size, res (jump abs), pc+res (jump rel), pc+op1 (jnz and dst != 0)
//	ap: ap, ap+res, ap+1, ap+2 (call)
//	fp: fp, dst (ret), ap+2 (call)
func NextState(api frontend.API, mem *Memory, regs Registers, d Decoded, ops Operands) Transition {
	dstAddr := api.Add(branch.Select(api, regs.FP, regs.AP, d.DstReg), d.OffDst)
	dst := mem.Load(api, dstAddr)

	dstNonZero := api.Sub(1, api.IsZero(dst))
	takeJnz := api.And(d.PCJnz, dstNonZero)
	nextPC := branch.Cascade(api, api.Add(regs.PC, ops.Size),
		branch.Case{Flag: d.PCJumpAbs, Value: ops.Res},
		branch.Case{Flag: d.PCJumpRel, Value: api.Add(regs.PC, ops.Res)},
		branch.Case{Flag: takeJnz, Value: api.Add(regs.PC, ops.Op1)},
	)

	frame := api.Add(regs.AP, 2)
	nextAP := branch.Cascade(api, regs.AP,
		branch.Case{Flag: d.APAddRes, Value: api.Add(regs.AP, ops.Res)},
		branch.Case{Flag: d.APAdd1, Value: api.Add(regs.AP, 1)},
		branch.Case{Flag: d.OpcodeCall, Value: frame},
	)
	nextFP := branch.Cascade(api, regs.FP,
		branch.Case{Flag: d.OpcodeRet, Value: dst},
		branch.Case{Flag: d.OpcodeCall, Value: frame},
	)

	return Transition{
		DstAddr: dstAddr,
		Dst:     dst,
		Next: Registers{
			PC: nextPC,
			AP: nextAP,
			FP: nextFP,
		},
	}
}
